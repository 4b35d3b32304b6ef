package medication

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Medication) error {
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidReminderTime(m.ReminderTime) {
		return fmt.Errorf("reminder_time must be in HH:MM format (e.g. 09:00)")
	}
	if m.ReminderDays == nil {
		m.ReminderDays = AllDays()
	}
	if !ValidReminderDays(m.ReminderDays) {
		return fmt.Errorf("reminder_days must be integers 1-7")
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidReminderTime(m.ReminderTime) {
		return fmt.Errorf("reminder_time must be in HH:MM format (e.g. 09:00)")
	}
	if !ValidReminderDays(m.ReminderDays) {
		return fmt.Errorf("reminder_days must be integers 1-7")
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
