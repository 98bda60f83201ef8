package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
)

const (
	tourColumns = `id, name, slug, duration, max_group_size, difficulty,
		ratings_average, ratings_quantity, price, summary, description, created_at, updated_at`

	createTourSQL = `INSERT INTO tours (id, name, slug, duration, max_group_size, difficulty,
		ratings_average, ratings_quantity, price, summary, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	listToursSQL = `SELECT ` + tourColumns + ` FROM tours ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	getTourSQL = `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	updateTourSQL = `UPDATE tours SET name = $2, slug = $3, duration = $4, max_group_size = $5,
		difficulty = $6, price = $7, summary = $8, description = $9, updated_at = $10 WHERE id = $1`

	deleteTourSQL = `DELETE FROM tours WHERE id = $1`
)

// TourRepository implements ports.TourStore.
type TourRepository struct {
	db DB
}

func NewTourRepository(db DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	_, err := r.db.Exec(ctx, createTourSQL,
		tour.ID, tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize, tour.Difficulty,
		tour.RatingsAverage, tour.RatingsQuantity, tour.Price, tour.Summary, tour.Description,
		tour.CreatedAt, tour.UpdatedAt)
	return err
}

func (r *TourRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tour, error) {
	rows, err := r.db.Query(ctx, listToursSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tours []*domain.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

func (r *TourRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	t, err := scanTour(r.db.QueryRow(ctx, getTourSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	_, err := r.db.Exec(ctx, updateTourSQL,
		tour.ID, tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize,
		tour.Difficulty, tour.Price, tour.Summary, tour.Description, tour.UpdatedAt)
	return err
}

func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, deleteTourSQL, id)
	return err
}

func scanTour(row pgx.Row) (*domain.Tour, error) {
	var t domain.Tour
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Duration, &t.MaxGroupSize, &t.Difficulty,
		&t.RatingsAverage, &t.RatingsQuantity, &t.Price, &t.Summary, &t.Description,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var _ ports.TourStore = (*TourRepository)(nil)
