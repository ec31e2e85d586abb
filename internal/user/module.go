package user

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrzw/userhub/internal/auth"
	"github.com/andrzw/userhub/internal/config"
)

// NewModule returns the user module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide repository
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			// Provide service
			fx.Annotate(
				func(
					config *config.AppConfig,
					log *zap.Logger,
					repo Repository,
					hasher *auth.PasswordHasher,
					tokens *auth.TokenService,
					email EmailSender,
				) *Service {
					return NewService(&config.Auth, log, repo, hasher, tokens, email)
				},
			),
			// Provide handler
			fx.Annotate(
				func(svc *Service, log *zap.Logger) *Handler {
					return NewHandler(svc, log)
				},
			),
		),
	)
}
