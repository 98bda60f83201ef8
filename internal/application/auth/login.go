package auth

import (
	"context"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token    string
	Identity *domain.Identity
}

// Login verifies credentials and issues a session token.
type Login struct {
	identities ports.IdentityStore
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
}

func NewLogin(identities ports.IdentityStore, hasher ports.PasswordHasher, tokens ports.TokenService) *Login {
	return &Login{identities: identities, hasher: hasher, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	identity, err := uc.identities.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// One error for "no such identity" and "wrong password".
	if identity == nil || !uc.hasher.Verify(input.Password, identity.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.tokens.Issue(identity.ID.String())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Identity: identity}, nil
}
