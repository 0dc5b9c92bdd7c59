// Package auth implements the credential primitives of the application:
// one-way password hashing and stateless session tokens. Both are consumed
// by the services layer and the HTTP auth middleware.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a configurable cost factor.
//
// Each call to Hash salts the input independently, so two hashes of the same
// plaintext differ; Verify accepts any digest previously produced by Hash for
// the matching plaintext. Comparison is constant-time inside bcrypt.
type PasswordHasher struct {
	// Cost is the bcrypt work factor. Values outside the valid bcrypt
	// range are coerced to bcrypt.DefaultCost by Hash.
	Cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	return &PasswordHasher{Cost: cost}
}

// Hash derives a salted bcrypt digest from plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches a digest produced by Hash.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
