package auth

import "errors"

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for signature or structural failures.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrUnauthenticated is returned when no usable token accompanies a request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when a valid token carries an insufficient role.
	ErrForbidden = errors.New("forbidden")
)
