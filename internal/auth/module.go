package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/andrzw/userhub/internal/config"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(config *config.AppConfig) *PasswordHasher {
					return NewPasswordHasher(config.Auth.BcryptCost)
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger) *TokenService {
					return NewTokenService(&config.Auth, log)
				},
			),
			fx.Annotate(
				func(tokens *TokenService, log *zap.Logger) *Middleware {
					return NewMiddleware(tokens, log)
				},
			),
		),
	)
}
