package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a tour.
type Review struct {
	ID         uuid.UUID `json:"id"`
	TourID     uuid.UUID `json:"tour"`
	IdentityID uuid.UUID `json:"user"`
	Rating     int       `json:"rating"`
	Body       string    `json:"review"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}
