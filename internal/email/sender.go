package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andrzw/userhub/internal/config"
)

// Sender delivers account-verification mail over SMTP. When disabled in
// configuration it degrades to a logging no-op, which keeps local
// development and tests free of a mail dependency.
type Sender struct {
	config *config.EmailConfig
	log    *zap.Logger
}

func NewSender(config *config.EmailConfig, log *zap.Logger) *Sender {
	return &Sender{
		config: config,
		log:    log,
	}
}

func (s *Sender) SendVerification(ctx context.Context, to string, userID uuid.UUID, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s/%s", s.config.BaseURL, userID, token)

	if !s.config.Enabled {
		s.log.Info("email delivery disabled, skipping verification mail",
			zap.String("to", to),
			zap.String("link", link))
		return nil
	}

	msg := []byte("From: " + s.config.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Verify your email address\r\n" +
		"\r\n" +
		"Welcome! Please verify your email address by visiting:\r\n\r\n" +
		link + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, nil, s.config.From, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send verification mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
