package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) (*Middleware, *TokenService) {
	tokens := newTestTokenService(t)
	return NewMiddleware(tokens, newTestLogger(t)), tokens
}

func TestMiddleware_RequireRoles(t *testing.T) {
	mw, tokens := newTestMiddleware(t)

	adminToken, err := tokens.Issue("admin-subject", RoleAdmin)
	require.NoError(t, err)
	userToken, err := tokens.Issue("user-subject", RoleAuthenticated)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer " + adminToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid.token.here",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "insufficient role",
			authHeader: "Bearer " + userToken,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "allowed role",
			authHeader: "Bearer " + adminToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity *Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, _ = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.RequireRoles(ManagementRoles...)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, gotIdentity)
				assert.Equal(t, "admin-subject", gotIdentity.Subject)
				assert.Equal(t, RoleAdmin, gotIdentity.Role)
			}
		})
	}
}

func TestMiddleware_Authorize_ExpiredToken(t *testing.T) {
	cfg := newTestConfig()
	cfg.TokenExpiration = -time.Hour
	expired := NewTokenService(cfg, newTestLogger(t))
	token, err := expired.Issue("subject", RoleAdmin)
	require.NoError(t, err)

	mw, _ := newTestMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, err = mw.Authorize(req, RoleAdmin)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMiddleware_LowercaseBearerScheme(t *testing.T) {
	mw, tokens := newTestMiddleware(t)
	token, err := tokens.Issue("subject", RoleManager)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "bearer "+token)

	identity, err := mw.Authorize(req, RoleManager)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, identity.Role)
}
