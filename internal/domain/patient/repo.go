package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates no patient row matched the lookup.
var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByPhone(ctx context.Context, phone string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error)

	// LinkCaregiver upserts the patient–caregiver link. Re-linking an
	// already-linked pair is not an error.
	LinkCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID, isPrimary bool) error
}
