package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

const (
	identityColumns = `id, name, email, password_hash, role, password_changed_at,
		reset_token_hash, reset_token_expires_at, created_at, updated_at`

	createIdentitySQL = `INSERT INTO identities (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	findIdentityByEmailSQL = `SELECT ` + identityColumns + ` FROM identities WHERE email = $1`

	findIdentityByIDSQL = `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`

	// The expiry filter belongs in the query: an expired flow must behave
	// exactly like a missing one.
	findIdentityByResetHashSQL = `SELECT ` + identityColumns + ` FROM identities
		WHERE reset_token_hash = $1 AND reset_token_expires_at > NOW()`

	saveIdentitySQL = `UPDATE identities SET name = $2, email = $3, password_hash = $4, role = $5,
		password_changed_at = $6, reset_token_hash = $7, reset_token_expires_at = $8, updated_at = $9
		WHERE id = $1`
)

// IdentityRepository implements ports.IdentityStore.
type IdentityRepository struct {
	db DB
}

func NewIdentityRepository(db DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	_, err := r.db.Exec(ctx, createIdentitySQL,
		identity.ID, identity.Name, identity.Email, identity.PasswordHash,
		string(identity.Role), identity.CreatedAt, identity.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domerrors.ErrEmailTaken
	}
	return err
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.scanOne(r.db.QueryRow(ctx, findIdentityByEmailSQL, email))
}

func (r *IdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	return r.scanOne(r.db.QueryRow(ctx, findIdentityByIDSQL, id))
}

func (r *IdentityRepository) FindByResetHash(ctx context.Context, hash string) (*domain.Identity, error) {
	return r.scanOne(r.db.QueryRow(ctx, findIdentityByResetHashSQL, hash))
}

func (r *IdentityRepository) Save(ctx context.Context, identity *domain.Identity) error {
	_, err := r.db.Exec(ctx, saveIdentitySQL,
		identity.ID, identity.Name, identity.Email, identity.PasswordHash,
		string(identity.Role), identity.PasswordChangedAt,
		identity.ResetTokenHash, identity.ResetTokenExpiresAt, identity.UpdatedAt)
	return err
}

func (r *IdentityRepository) scanOne(row pgx.Row) (*domain.Identity, error) {
	var i domain.Identity
	var role string
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.PasswordHash, &role,
		&i.PasswordChangedAt, &i.ResetTokenHash, &i.ResetTokenExpiresAt,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	i.Role = domain.Role(role)
	return &i, nil
}

var _ ports.IdentityStore = (*IdentityRepository)(nil)
