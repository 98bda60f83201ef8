package ports

import "time"

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. Malformed hashes and
	// mismatches both report false; it never panics or errors.
	Verify(password, hash string) bool
}

// TokenService signs and verifies session tokens. Verify distinguishes
// expiry (domain/errors.ErrTokenExpired) from every other failure
// (domain/errors.ErrTokenInvalid).
type TokenService interface {
	Issue(identityID string) (string, error)
	Verify(token string) (identityID string, issuedAt time.Time, err error)
}
