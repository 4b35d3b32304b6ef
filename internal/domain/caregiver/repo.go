package caregiver

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates no caregiver row matched the lookup.
var ErrNotFound = errors.New("caregiver not found")

type Repository interface {
	Create(ctx context.Context, c *Caregiver) error
	GetByID(ctx context.Context, id uuid.UUID) (*Caregiver, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*Caregiver, error)
}
