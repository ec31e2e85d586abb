package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrzw/userhub/internal/auth"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Nickname           string    `gorm:"uniqueIndex;not null" json:"nickname"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Bio                *string   `json:"bio,omitempty"`
	ProfilePictureURL  *string   `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string   `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string   `json:"github_profile_url,omitempty"`
	Role               auth.Role `gorm:"type:varchar(20);not null" json:"role"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	EmailVerified      bool      `gorm:"not null;default:false" json:"email_verified"`
	// VerificationToken is the single-use secret mailed at registration.
	VerificationToken *string    `json:"-"`
	IsLocked          bool       `gorm:"not null;default:false" json:"is_locked"`
	FailedLoginCount  int        `gorm:"not null;default:0" json:"-"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
