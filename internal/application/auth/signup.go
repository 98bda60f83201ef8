package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type SignupResult struct {
	Token    string
	Identity *domain.Identity
}

// Signup creates a new identity with the base role and logs it in.
type Signup struct {
	identities ports.IdentityStore
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
}

func NewSignup(identities ports.IdentityStore, hasher ports.PasswordHasher, tokens ports.TokenService) *Signup {
	return &Signup{identities: identities, hasher: hasher, tokens: tokens}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	existing, err := uc.identities.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	identity := &domain.Identity{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Signup does not set PasswordChangedAt; only later mutations count as
	// a change for token-freshness purposes.
	if err := uc.identities.Create(ctx, identity); err != nil {
		return nil, err
	}
	token, err := uc.tokens.Issue(identity.ID.String())
	if err != nil {
		return nil, err
	}
	return &SignupResult{Token: token, Identity: identity}, nil
}
