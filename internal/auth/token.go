package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/andrzw/userhub/internal/config"
)

// Claims is the payload carried by every issued bearer token.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. It is stateless:
// there is no revocation list, compromise mitigation relies on the short
// configured TTL.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	log    *zap.Logger
}

func NewTokenService(cfg *config.AuthConfig, log *zap.Logger) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenExpiration,
		log:    log,
	}
}

// Issue signs a token asserting (subject, role) valid for the configured TTL.
func (s *TokenService) Issue(subject string, role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Expired tokens yield ErrTokenExpired, everything else ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if !claims.Role.Valid() {
		s.log.Warn("token carried unknown role", zap.String("role", string(claims.Role)))
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
