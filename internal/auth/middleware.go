package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Identity is the resolved result of a successful gate evaluation. It lives
// only for the duration of one request.
type Identity struct {
	Subject string
	Role    Role
}

type contextKey string

// identityContextKey is the key under which the resolved Identity is stored.
const identityContextKey contextKey = "identity"

// Middleware gates HTTP routes on bearer tokens and role sets.
type Middleware struct {
	tokens *TokenService
	log    *zap.Logger
}

func NewMiddleware(tokens *TokenService, log *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		log:    log,
	}
}

// Authorize resolves the request's bearer token to an Identity and enforces
// that its role is among the allowed set. ErrUnauthenticated covers missing,
// malformed, invalid and expired tokens; ErrForbidden a valid token with an
// insufficient role.
func (m *Middleware) Authorize(r *http.Request, allowed ...Role) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrUnauthenticated
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if !claims.Role.In(allowed...) {
		return nil, ErrForbidden
	}

	return &Identity{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}

// RequireRoles wraps a handler with the access-control gate for the given
// role set. On success the resolved Identity is placed in the request context.
func (m *Middleware) RequireRoles(allowed ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := m.Authorize(r, allowed...)
			if err != nil {
				m.log.Warn("request rejected by access gate",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				writeGateError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the Identity stored by RequireRoles, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}

func writeGateError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	message := "authentication required"
	if err == ErrForbidden {
		status = http.StatusForbidden
		message = "insufficient role"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
