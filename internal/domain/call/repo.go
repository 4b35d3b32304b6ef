package call

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates no call row matched the lookup.
var ErrNotFound = errors.New("call not found")

type Repository interface {
	Schedule(ctx context.Context, s *ScheduledReminderCall) error
	ListUpcomingByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ScheduledReminderCall, int, error)

	GetLogByID(ctx context.Context, id uuid.UUID) (*ReminderCallLog, error)
	GetLogDetail(ctx context.Context, id uuid.UUID) (*LogDetail, error)
	ListLogsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ReminderCallLog, int, error)
}
