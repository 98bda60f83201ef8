// Package auth provides the JWT session-token service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

// TokenIssuer implements ports.TokenService with HS256. Verification is
// stateless; identity freshness is a separate check layered on top by the
// access guard.
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func NewTokenIssuer(secret []byte, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, lifetime: lifetime}
}

// Issue signs a token carrying the identity id, issued-at, and expiry.
func (t *TokenIssuer) Issue(identityID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the identity id and
// issuance time. Expired tokens fail with ErrTokenExpired; every other
// failure (bad signature, malformed token, wrong algorithm, missing claims)
// is ErrTokenInvalid.
func (t *TokenIssuer) Verify(tokenString string) (string, time.Time, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, domerrors.ErrTokenExpired
		}
		return "", time.Time{}, domerrors.ErrTokenInvalid
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return "", time.Time{}, domerrors.ErrTokenInvalid
	}
	return claims.Subject, claims.IssuedAt.Time, nil
}
