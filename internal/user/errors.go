package user

import "errors"

var (
	ErrInvalidCredentialFormat  = errors.New("password does not meet strength requirements")
	ErrInvalidFieldFormat       = errors.New("field has invalid format")
	ErrEmptyUpdate              = errors.New("at least one field must be provided for the update")
	ErrDuplicateEmail           = errors.New("email already exists")
	ErrDuplicateNickname        = errors.New("nickname already exists")
	ErrNotFound                 = errors.New("user not found")
	ErrAccountLocked            = errors.New("account locked due to too many failed login attempts")
	ErrBadCredentials           = errors.New("incorrect email or password")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
)
