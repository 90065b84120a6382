package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces and verifies password digests. The persistence
// layer never stores plaintext; callers inject a hasher wherever an account
// row is created.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher hashes passwords with bcrypt, an adaptive salted scheme.
// A zero Cost falls back to the library default work factor.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with the default work factor
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt digest of plaintext. Each call salts
// independently, so equal inputs produce distinct digests.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("Hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
