package security

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost trades brute-force resistance against login latency;
// hashing at this cost takes tens of milliseconds on current hardware.
const DefaultBcryptCost = 12

// BcryptHasher implements ports.PasswordHasher using bcrypt. The salt is
// generated per call and embedded in the digest, so hashing the same
// password twice never yields the same output.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches the digest. Mismatches and
// malformed digests both report false; bcrypt's comparison is constant-time
// with respect to the digest content.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
