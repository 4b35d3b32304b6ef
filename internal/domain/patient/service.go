package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreateByPhone returns the patient with the given phone number,
// creating one when absent. Setup is idempotent on phone number: the second
// call with the same number returns the row the first call created.
func (s *Service) GetOrCreateByPhone(ctx context.Context, name, phone, timezone string) (*Patient, error) {
	existing, err := s.repo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p := &Patient{Name: name, PhoneNumber: phone, Timezone: timezone}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// LinkCaregiver associates a caregiver with a patient; duplicates are
// tolerated silently.
func (s *Service) LinkCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID, isPrimary bool) error {
	return s.repo.LinkCaregiver(ctx, patientID, caregiverID, isPrimary)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListByCaregiver(ctx, caregiverID, limit, offset)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
