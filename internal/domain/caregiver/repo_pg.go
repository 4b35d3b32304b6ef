package caregiver

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const caregiverCols = `id, auth_user_id, name, phone_number, email, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, c *Caregiver) error {
	c.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO caregivers (id, auth_user_id, name, phone_number, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		c.ID, c.AuthUserID, c.Name, c.PhoneNumber, c.Email,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error) {
	return scanCaregiver(r.pool.QueryRow(ctx,
		`SELECT `+caregiverCols+` FROM caregivers WHERE id = $1`, id))
}

func (r *repoPG) GetByAuthUserID(ctx context.Context, authUserID string) (*Caregiver, error) {
	return scanCaregiver(r.pool.QueryRow(ctx,
		`SELECT `+caregiverCols+` FROM caregivers WHERE auth_user_id = $1`, authUserID))
}

func scanCaregiver(row pgx.Row) (*Caregiver, error) {
	var c Caregiver
	err := row.Scan(&c.ID, &c.AuthUserID, &c.Name, &c.PhoneNumber, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
