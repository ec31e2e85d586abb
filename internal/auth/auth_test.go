package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrzw/userhub/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	assert.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       "test-secret-key",
		Issuer:          "userhub-test",
		TokenExpiration: time.Hour,
		MaxFailedLogins: 5,
		BcryptCost:      bcrypt.MinCost,
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	return NewTokenService(newTestConfig(), newTestLogger(t))
}

func newTestHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}
