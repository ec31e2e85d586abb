package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a fixed cost. Digests are salted and
// self-describing, so the same plaintext hashes to a different digest on
// every call.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Verify reports whether password matches digest. A malformed digest is
// treated as a mismatch, never an error.
func (h *PasswordHasher) Verify(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}

// BurnHash hashes a throwaway value so that lookups for unknown accounts
// take roughly as long as a real verification (timing attack mitigation).
func (h *PasswordHasher) BurnHash() {
	_, _ = h.Hash("dummy")
}
