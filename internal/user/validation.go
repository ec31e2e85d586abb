package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	nicknamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	urlPattern      = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// passwordSpecials is the accepted special-character set for passwords.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword enforces the strength rule: at least 8 characters, at
// least one letter, one uppercase letter, one digit and one special
// character, with every character drawn from those classes.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidCredentialFormat
	}

	var hasLetter, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLetter = true
		case c >= 'A' && c <= 'Z':
			hasLetter = true
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		default:
			return ErrInvalidCredentialFormat
		}
	}

	if !hasLetter || !hasUpper || !hasDigit || !hasSpecial {
		return ErrInvalidCredentialFormat
	}

	return nil
}

// validURL accepts empty values; non-empty ones must look like an
// http(s) URL without whitespace.
func validURL(value interface{}) error {
	s := indirectString(value)
	if s == "" {
		return nil
	}
	if !urlPattern.MatchString(s) {
		return errors.New("invalid URL format")
	}
	return nil
}

func indirectString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	}
	return ""
}

// CreateUserRequest is the registration/create payload.
type CreateUserRequest struct {
	Email              string  `json:"email"`
	Nickname           string  `json:"nickname"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Password           string  `json:"password"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string `json:"github_profile_url,omitempty"`
}

// Validate runs the field-format rules. The nickname may be empty, in which
// case one is generated at creation time.
func (r CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Nickname, validation.Length(3, 20), validation.Match(nicknamePattern)),
		validation.Field(&r.ProfilePictureURL, validation.By(validURL)),
		validation.Field(&r.LinkedinProfileURL, validation.By(validURL)),
		validation.Field(&r.GithubProfileURL, validation.By(validURL)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFieldFormat, err)
	}

	return ValidatePassword(r.Password)
}

// UpdateUserRequest is the partial-update payload. Only non-nil, non-empty
// fields are applied.
type UpdateUserRequest struct {
	Email              *string `json:"email,omitempty"`
	Nickname           *string `json:"nickname,omitempty"`
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string `json:"github_profile_url,omitempty"`
}

// Validate rejects empty updates and checks format rules on provided fields.
func (r UpdateUserRequest) Validate() error {
	if len(r.Fields()) == 0 {
		return ErrEmptyUpdate
	}

	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Nickname, validation.Length(3, 20), validation.Match(nicknamePattern)),
		validation.Field(&r.ProfilePictureURL, validation.By(validURL)),
		validation.Field(&r.LinkedinProfileURL, validation.By(validURL)),
		validation.Field(&r.GithubProfileURL, validation.By(validURL)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFieldFormat, err)
	}

	return nil
}

// Fields returns the provided fields as a column-name map suitable for a
// partial persistence update.
func (r UpdateUserRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	put := func(column string, value *string) {
		if value != nil && *value != "" {
			fields[column] = *value
		}
	}

	if r.Email != nil && *r.Email != "" {
		fields["email"] = normalizeEmail(*r.Email)
	}
	put("nickname", r.Nickname)
	put("first_name", r.FirstName)
	put("last_name", r.LastName)
	put("bio", r.Bio)
	put("profile_picture_url", r.ProfilePictureURL)
	put("linkedin_profile_url", r.LinkedinProfileURL)
	put("github_profile_url", r.GithubProfileURL)

	return fields
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
