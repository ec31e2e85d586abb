package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mockRepository is an in-memory Repository used by tests. It mirrors the
// SQL implementation's atomic counter semantics under a mutex.
type mockRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
	order []uuid.UUID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[uuid.UUID]*User),
	}
}

func (r *mockRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
		if u.Nickname == user.Nickname {
			return ErrDuplicateNickname
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	r.order = append(r.order, user.ID)
	return nil
}

func (r *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *mockRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *mockRepository) FindByNickname(_ context.Context, nickname string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Nickname == nickname {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *mockRepository) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return nil, ErrNotFound
	}

	for column, value := range fields {
		s, _ := value.(string)
		switch column {
		case "email":
			user.Email = s
		case "nickname":
			user.Nickname = s
		case "first_name":
			user.FirstName = s
		case "last_name":
			user.LastName = s
		case "bio":
			user.Bio = &s
		case "profile_picture_url":
			user.ProfilePictureURL = &s
		case "linkedin_profile_url":
			user.LinkedinProfileURL = &s
		case "github_profile_url":
			user.GithubProfileURL = &s
		}
	}
	user.UpdatedAt = time.Now()

	clone := *user
	return &clone, nil
}

func (r *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return ErrNotFound
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *mockRepository) List(_ context.Context, skip, limit int) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]User, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, *r.users[id])
	}

	if skip >= len(all) {
		return []User{}, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (r *mockRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *mockRepository) RecordFailedLogin(_ context.Context, id uuid.UUID, maxFailed int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return ErrNotFound
	}

	user.FailedLoginCount++
	if user.FailedLoginCount >= maxFailed {
		user.IsLocked = true
	}
	return nil
}

func (r *mockRepository) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return ErrNotFound
	}

	user.FailedLoginCount = 0
	user.LastLoginAt = &at
	return nil
}

func (r *mockRepository) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return ErrNotFound
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	return nil
}

func (r *mockRepository) Unlock(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return ErrNotFound
	}

	user.IsLocked = false
	user.FailedLoginCount = 0
	return nil
}
