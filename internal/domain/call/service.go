package call

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ScheduleFirst creates the initial call attempt for a newly provisioned
// patient. The scheduled time is the next occurrence of the medication's
// reminder time, computed by FirstCallTime.
func (s *Service) ScheduleFirst(ctx context.Context, patientID, medicationID uuid.UUID, reminderTime string, now time.Time) (*ScheduledReminderCall, error) {
	at, err := FirstCallTime(now, reminderTime)
	if err != nil {
		return nil, fmt.Errorf("compute first call time: %w", err)
	}

	sc := &ScheduledReminderCall{
		PatientID:     patientID,
		MedicationID:  medicationID,
		MedicationIDs: []uuid.UUID{medicationID},
		ScheduledFor:  at,
		AttemptNumber: 1,
	}
	if err := s.repo.Schedule(ctx, sc); err != nil {
		return nil, fmt.Errorf("schedule call: %w", err)
	}
	return sc, nil
}

func (s *Service) ListUpcoming(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ScheduledReminderCall, int, error) {
	return s.repo.ListUpcomingByPatient(ctx, patientID, limit, offset)
}

func (s *Service) GetLog(ctx context.Context, id uuid.UUID) (*ReminderCallLog, error) {
	return s.repo.GetLogByID(ctx, id)
}

// GetLogDetail loads a call log together with the patient name and medication
// name/dosage needed to build a summarization prompt.
func (s *Service) GetLogDetail(ctx context.Context, id uuid.UUID) (*LogDetail, error) {
	return s.repo.GetLogDetail(ctx, id)
}

func (s *Service) ListLogs(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ReminderCallLog, int, error) {
	return s.repo.ListLogsByPatient(ctx, patientID, limit, offset)
}
