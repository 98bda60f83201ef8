package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

type ChangePasswordInput struct {
	IdentityID      uuid.UUID
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordResult struct {
	Token    string
	Identity *domain.Identity
}

// ChangePassword rotates an authenticated caller's password and issues a
// fresh token. Setting PasswordChangedAt invalidates every token issued
// before the change.
type ChangePassword struct {
	identities ports.IdentityStore
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
}

func NewChangePassword(identities ports.IdentityStore, hasher ports.PasswordHasher, tokens ports.TokenService) *ChangePassword {
	return &ChangePassword{identities: identities, hasher: hasher, tokens: tokens}
}

func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) (*ChangePasswordResult, error) {
	identity, err := uc.identities.FindByID(ctx, input.IdentityID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	if !uc.hasher.Verify(input.CurrentPassword, identity.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	identity.PasswordHash = hash
	identity.PasswordChangedAt = &now
	identity.UpdatedAt = now
	if err := uc.identities.Save(ctx, identity); err != nil {
		return nil, err
	}
	token, err := uc.tokens.Issue(identity.ID.String())
	if err != nil {
		return nil, err
	}
	return &ChangePasswordResult{Token: token, Identity: identity}, nil
}
