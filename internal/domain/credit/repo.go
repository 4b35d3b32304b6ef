package credit

import (
	"context"

	"github.com/google/uuid"
)

// Repository is read-only: balances are debited by the calling pipeline and
// credited by the purchase flow, both outside this service.
type Repository interface {
	GetBalance(ctx context.Context, caregiverID uuid.UUID) (*Balance, error)
	ListUsage(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Usage, int, error)
	ListPurchases(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Purchase, int, error)
}
