package medication

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates no medication row matched the lookup.
var ErrNotFound = errors.New("medication not found")

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
}
