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
	reviewColumns = `id, tour_id, identity_id, rating, body, created_at, updated_at`

	createReviewSQL = `INSERT INTO reviews (id, tour_id, identity_id, rating, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	listReviewsByTourSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE tour_id = $1 ORDER BY created_at DESC`

	getReviewSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	updateReviewSQL = `UPDATE reviews SET rating = $2, body = $3, updated_at = $4 WHERE id = $1`

	deleteReviewSQL = `DELETE FROM reviews WHERE id = $1`
)

// ReviewRepository implements ports.ReviewStore.
type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	_, err := r.db.Exec(ctx, createReviewSQL,
		review.ID, review.TourID, review.IdentityID, review.Rating, review.Body,
		review.CreatedAt, review.UpdatedAt)
	return err
}

func (r *ReviewRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]*domain.Review, error) {
	rows, err := r.db.Query(ctx, listReviewsByTourSQL, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reviews []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, getReviewSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	_, err := r.db.Exec(ctx, updateReviewSQL, review.ID, review.Rating, review.Body, review.UpdatedAt)
	return err
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, deleteReviewSQL, id)
	return err
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.TourID, &rv.IdentityID, &rv.Rating, &rv.Body,
		&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

var _ ports.ReviewStore = (*ReviewRepository)(nil)
