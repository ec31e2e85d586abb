package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrzw/userhub/internal/auth"
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

type mockEmailSender struct {
	mu   sync.Mutex
	sent []uuid.UUID
}

func (m *mockEmailSender) SendVerification(_ context.Context, _ string, userID uuid.UUID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, userID)
	return nil
}

func (m *mockEmailSender) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testFixture struct {
	service *Service
	repo    *mockRepository
	tokens  *auth.TokenService
	hasher  *auth.PasswordHasher
	emails  *mockEmailSender
}

func newTestFixture(t *testing.T) *testFixture {
	cfg := newTestConfig()
	log := newTestLogger(t)
	repo := newMockRepository()
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg, log)
	emails := &mockEmailSender{}

	return &testFixture{
		service: NewService(cfg, log, repo, hasher, tokens, emails),
		repo:    repo,
		tokens:  tokens,
		hasher:  hasher,
		emails:  emails,
	}
}

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		Email:     "john.doe@example.com",
		Nickname:  "john_doe",
		FirstName: "John",
		LastName:  "Doe",
		Password:  "Secure*1234",
	}
}
