package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the persistence collaborator for user records. All mutations
// touching the lockout state are single SQL statements keyed by id so that
// concurrent requests against the same account cannot lose updates.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByNickname(ctx context.Context, nickname string) (*User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, skip, limit int) ([]User, error)
	Count(ctx context.Context) (int64, error)

	// RecordFailedLogin atomically increments the failed-login counter and,
	// when the counter has reached maxFailed, flips the account to locked.
	RecordFailedLogin(ctx context.Context, id uuid.UUID, maxFailed int) error

	// RecordLogin resets the failed-login counter and stamps last_login_at.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// Unlock is the administrative escape hatch from the locked state. It is
	// deliberately not exposed over HTTP.
	Unlock(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return translateUniqueViolation(r.db.WithContext(ctx).Create(user).Error)
}

// uniqueViolation is the Postgres error code for a unique-constraint breach.
const uniqueViolation = "23505"

// translateUniqueViolation maps a unique-index breach on email or nickname to
// the matching duplicate sentinel. The service's pre-checks race with
// concurrent writes; the index is the authority.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "nickname"):
		return ErrDuplicateNickname
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByNickname(ctx context.Context, nickname string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("nickname = ?", nickname).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*User, error) {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translateUniqueViolation(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, skip, limit int) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Order("created_at").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&total).Error
	return total, err
}

func (r *repository) RecordFailedLogin(ctx context.Context, id uuid.UUID, maxFailed int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&User{}).
			Where("id = ?", id).
			UpdateColumn("failed_login_count", gorm.Expr("failed_login_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		// Conditional write keeps the NORMAL -> LOCKED transition
		// deterministic under racing failures.
		return tx.Model(&User{}).
			Where("id = ? AND failed_login_count >= ?", id, maxFailed).
			UpdateColumn("is_locked", true).Error
	})
}

func (r *repository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"failed_login_count": 0,
		"last_login_at":      at,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"email_verified":     true,
		"verification_token": nil,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Unlock(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_locked":          false,
		"failed_login_count": 0,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
