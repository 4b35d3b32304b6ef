package summary

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, s *ConversationSummary) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ConversationSummary, int, error)
}
