package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrzw/userhub/internal/config"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t)

	tests := []struct {
		name    string
		subject string
		role    Role
	}{
		{
			name:    "admin token",
			subject: "b4b9b1f0-0000-0000-0000-000000000001",
			role:    RoleAdmin,
		},
		{
			name:    "authenticated token",
			subject: "b4b9b1f0-0000-0000-0000-000000000002",
			role:    RoleAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Issue(tt.subject, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := svc.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, claims.Subject)
			assert.Equal(t, tt.role, claims.Role)
			assert.True(t, claims.ExpiresAt.After(time.Now()))
		})
	}
}

func TestTokenService_Verify(t *testing.T) {
	svc := newTestTokenService(t)

	tests := []struct {
		name       string
		setupToken func(t *testing.T) string
		wantErr    error
	}{
		{
			name: "expired token",
			setupToken: func(t *testing.T) string {
				cfg := newTestConfig()
				cfg.TokenExpiration = -time.Hour
				expired := NewTokenService(cfg, newTestLogger(t))
				token, err := expired.Issue("subject", RoleAdmin)
				require.NoError(t, err)
				return token
			},
			wantErr: ErrTokenExpired,
		},
		{
			name: "structurally invalid token",
			setupToken: func(t *testing.T) string {
				return "invalid.token.here"
			},
			wantErr: ErrTokenInvalid,
		},
		{
			name: "token signed with another secret",
			setupToken: func(t *testing.T) string {
				cfg := newTestConfig()
				cfg.JWTSecret = "some-other-secret"
				other := NewTokenService(cfg, newTestLogger(t))
				token, err := other.Issue("subject", RoleAdmin)
				require.NoError(t, err)
				return token
			},
			wantErr: ErrTokenInvalid,
		},
		{
			name: "token carrying unknown role",
			setupToken: func(t *testing.T) string {
				token, err := svc.Issue("subject", Role("SUPERUSER"))
				require.NoError(t, err)
				return token
			},
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.setupToken(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenService_ClaimsCarryIssuer(t *testing.T) {
	cfg := &config.AuthConfig{
		JWTSecret:       "test-secret-key",
		Issuer:          "userhub-test",
		TokenExpiration: time.Minute,
	}
	svc := NewTokenService(cfg, newTestLogger(t))

	token, err := svc.Issue("subject", RoleManager)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "userhub-test", claims.Issuer)
}
