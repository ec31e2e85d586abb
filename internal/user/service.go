package user

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andrzw/userhub/internal/api"
	"github.com/andrzw/userhub/internal/auth"
	"github.com/andrzw/userhub/internal/config"
)

const defaultPageSize = 10

// EmailSender delivers verification mail. Sends are fire-and-forget from the
// service's point of view: a failed send never rolls back account creation.
type EmailSender interface {
	SendVerification(ctx context.Context, email string, userID uuid.UUID, token string) error
}

// Service orchestrates the user directory operations.
type Service struct {
	config *config.AuthConfig
	log    *zap.Logger
	repo   Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	email  EmailSender
}

func NewService(
	config *config.AuthConfig,
	log *zap.Logger,
	repo Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	email EmailSender,
) *Service {
	return &Service{
		config: config,
		log:    log,
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		email:  email,
	}
}

// Create registers a new account. New accounts start with role AUTHENTICATED,
// an unverified email, a zero failed-login counter and unlocked state.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	// Normalize before validating so that padding or casing around an
	// otherwise valid address never fails the format check.
	email := normalizeEmail(req.Email)
	req.Email = email

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if err != ErrNotFound {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = generateNickname()
	} else if _, err := s.repo.FindByNickname(ctx, nickname); err == nil {
		return nil, ErrDuplicateNickname
	} else if err != ErrNotFound {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	verificationToken := uuid.NewString()
	user := &User{
		ID:                 uuid.New(),
		Email:              email,
		Nickname:           nickname,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Bio:                req.Bio,
		ProfilePictureURL:  req.ProfilePictureURL,
		LinkedinProfileURL: req.LinkedinProfileURL,
		GithubProfileURL:   req.GithubProfileURL,
		Role:               auth.RoleAuthenticated,
		PasswordHash:       hash,
		EmailVerified:      false,
		VerificationToken:  &verificationToken,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerification(user.Email, user.ID, verificationToken)

	return user, nil
}

func (s *Service) sendVerification(email string, id uuid.UUID, token string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.email.SendVerification(ctx, email, id, token); err != nil {
			s.log.Error("failed to send verification email",
				zap.String("user_id", id.String()),
				zap.Error(err))
		}
	}()
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of users with total count, 1-based page number and
// navigation links.
func (s *Service) List(ctx context.Context, skip, limit int) (*Page, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items: users,
		Total: total,
		Page:  PageNumber(skip, limit),
		Size:  len(users),
		Links: PaginationLinks(api.RouteUsers, skip, limit, total),
	}, nil
}

// Update applies the provided fields only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	if req.Email != nil {
		normalized := normalizeEmail(*req.Email)
		req.Email = &normalized
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.UpdateFields(ctx, id, req.Fields())
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Login runs the lockout gate, verifies credentials and issues a bearer
// token. The lockout check happens first: while the account is locked every
// attempt is rejected with ErrAccountLocked no matter what the attempt
// looks like.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == ErrNotFound {
			s.hasher.BurnHash()
			return "", ErrBadCredentials
		}
		return "", err
	}

	if user.IsLocked {
		return "", ErrAccountLocked
	}

	// A malformed password can never be a stored credential, so it is
	// rejected without hashing. It still counts as a failed attempt.
	if err := ValidatePassword(password); err != nil {
		s.recordFailedLogin(ctx, user.ID)
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailedLogin(ctx, user.ID)
		return "", ErrBadCredentials
	}

	if err := s.repo.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Error("failed to reset login attempts",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	return s.tokens.Issue(user.ID.String(), user.Role)
}

func (s *Service) recordFailedLogin(ctx context.Context, id uuid.UUID) {
	if err := s.repo.RecordFailedLogin(ctx, id, s.config.MaxFailedLogins); err != nil {
		s.log.Error("failed to record login failure",
			zap.String("user_id", id.String()),
			zap.Error(err))
	}
}

// VerifyEmail checks the single-use verification token and marks the email
// verified on match. Unknown accounts and token mismatches are
// indistinguishable to the caller.
func (s *Service) VerifyEmail(ctx context.Context, id uuid.UUID, token string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return ErrInvalidVerificationToken
		}
		return err
	}

	if user.VerificationToken == nil || token == "" {
		return ErrInvalidVerificationToken
	}

	if subtle.ConstantTimeCompare([]byte(*user.VerificationToken), []byte(token)) != 1 {
		return ErrInvalidVerificationToken
	}

	return s.repo.MarkEmailVerified(ctx, id)
}

func generateNickname() string {
	return "user-" + uuid.NewString()[:8]
}
