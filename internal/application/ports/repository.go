package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hyhong-code/tour-selling-api/internal/domain"
)

// IdentityStore persists identities. Lookup methods return (nil, nil) when no
// record matches; errors are reserved for store failures. FindByEmail and
// FindByID include the password hash in the loaded record.
type IdentityStore interface {
	Create(ctx context.Context, identity *domain.Identity) error
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	// FindByResetHash matches the stored reset-token hash and additionally
	// filters out expired reset flows.
	FindByResetHash(ctx context.Context, hash string) (*domain.Identity, error)
	// Save persists the full current state of the identity.
	Save(ctx context.Context, identity *domain.Identity) error
}

// TourStore persists tour listings.
type TourStore interface {
	Create(ctx context.Context, tour *domain.Tour) error
	List(ctx context.Context, limit, offset int) ([]*domain.Tour, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
	Update(ctx context.Context, tour *domain.Tour) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewStore persists tour reviews.
type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]*domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
