// Package errors holds the sentinel errors handlers map to HTTP status.
package errors

import "errors"

var (
	// ErrInvalidCredentials covers both "no such identity" and "wrong
	// password" so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUnauthenticated    = errors.New("not logged in")
	ErrForbidden          = errors.New("insufficient role for this action")
	ErrNotFound           = errors.New("not found")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
	ErrDeliveryFailed     = errors.New("error sending email")
	ErrStore              = errors.New("store unavailable")
	ErrValidation         = errors.New("invalid input")

	// Token verification failure kinds. The HTTP boundary treats both as
	// unauthenticated; they stay distinct for callers that need to know.
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)
