package email

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/andrzw/userhub/internal/config"
	"github.com/andrzw/userhub/internal/user"
)

// Module provides the verification-mail sender
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger) *Sender {
					return NewSender(&config.Email, log)
				},
				fx.As(new(user.EmailSender)),
			),
		),
	)
}
