package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tour is a sellable tour listing.
type Tour struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Duration        int        `json:"duration"`
	MaxGroupSize    int        `json:"maxGroupSize"`
	Difficulty      string     `json:"difficulty"`
	RatingsAverage  float64    `json:"ratingsAverage"`
	RatingsQuantity int        `json:"ratingsQuantity"`
	Price           float64    `json:"price"`
	Summary         string     `json:"summary"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"-"`
}

// Slugify derives the URL slug from a tour name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "-")
}
