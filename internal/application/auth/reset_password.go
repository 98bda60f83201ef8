package auth

import (
	"context"
	"time"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

type ResetPasswordInput struct {
	Secret      string
	NewPassword string
}

type ResetPasswordResult struct {
	Token    string
	Identity *domain.Identity
}

// ResetPassword redeems a reset secret: it looks the identity up by the
// secret's digest, sets the new password, and clears the reset state in the
// same save so the secret is single-use.
type ResetPassword struct {
	identities ports.IdentityStore
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
}

func NewResetPassword(identities ports.IdentityStore, hasher ports.PasswordHasher, tokens ports.TokenService) *ResetPassword {
	return &ResetPassword{identities: identities, hasher: hasher, tokens: tokens}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	hash := HashResetSecret(input.Secret)
	identity, err := uc.identities.FindByResetHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domerrors.ErrResetTokenInvalid
	}
	// The store already filters expired flows; re-check lazily in case it
	// returned a row right on the boundary.
	if identity.ResetTokenHash == nil || identity.ResetTokenExpiresAt == nil ||
		!ResetSecretMatches(input.Secret, *identity.ResetTokenHash, *identity.ResetTokenExpiresAt) {
		return nil, domerrors.ErrResetTokenInvalid
	}

	newHash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	identity.PasswordHash = newHash
	identity.PasswordChangedAt = &now
	identity.UpdatedAt = now
	identity.ClearResetToken()
	if err := uc.identities.Save(ctx, identity); err != nil {
		return nil, err
	}
	token, err := uc.tokens.Issue(identity.ID.String())
	if err != nil {
		return nil, err
	}
	return &ResetPasswordResult{Token: token, Identity: identity}, nil
}
