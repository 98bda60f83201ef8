package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// ResetSecretBytes is the entropy of a reset secret (32 bytes = 64 hex chars).
const ResetSecretBytes = 32

// GenerateResetSecret creates the one-time reset secret and the digest that
// gets persisted. The plaintext secret goes to the user out-of-band; only the
// hash is ever stored.
func GenerateResetSecret(window time.Duration) (secret, hash string, expiresAt time.Time, err error) {
	raw := make([]byte, ResetSecretBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", time.Time{}, err
	}
	secret = hex.EncodeToString(raw)
	return secret, HashResetSecret(secret), time.Now().Add(window), nil
}

// HashResetSecret computes the deterministic lookup digest of a secret.
// Unlike password hashing this must be comparable by equality, because the
// store looks the identity up by value.
func HashResetSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// ResetSecretMatches reports whether a presented secret matches the stored
// hash and the flow has not expired. An expired-but-matching secret fails.
func ResetSecretMatches(secret, storedHash string, expiresAt time.Time) bool {
	if secret == "" || storedHash == "" {
		return false
	}
	if time.Now().After(expiresAt) {
		return false
	}
	computed := HashResetSecret(secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
