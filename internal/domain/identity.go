package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization tier attached to an identity.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// Identity is a stored credential-bearing principal.
//
// PasswordHash is only populated by store methods that explicitly include it
// and must never appear in a response body. ResetTokenHash and
// ResetTokenExpiresAt are set and cleared together; one without the other is
// an invalid state.
type Identity struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	PasswordHash        string `json:"-"`
	Role                Role
	PasswordChangedAt   *time.Time
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issuance time. Both sides are truncated down to whole seconds
// so that a sub-second store timestamp cannot spuriously invalidate a token
// issued in the same second.
func (i *Identity) ChangedPasswordAfter(issuedAt time.Time) bool {
	if i.PasswordChangedAt == nil {
		return false
	}
	return i.PasswordChangedAt.Truncate(time.Second).After(issuedAt.Truncate(time.Second))
}

// SetResetToken opens a reset flow by recording the secret's hash and expiry.
func (i *Identity) SetResetToken(hash string, expiresAt time.Time) {
	i.ResetTokenHash = &hash
	i.ResetTokenExpiresAt = &expiresAt
}

// ClearResetToken closes the reset flow. Always clears both fields.
func (i *Identity) ClearResetToken() {
	i.ResetTokenHash = nil
	i.ResetTokenExpiresAt = nil
}
