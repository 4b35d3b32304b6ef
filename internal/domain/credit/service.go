package credit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/carecall/carecall/internal/platform/cache"
)

const balanceTTL = 30 * time.Second

type Service struct {
	repo  Repository
	cache *cache.Cache
}

// NewService takes an optional cache; nil disables balance caching.
func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// GetBalance reads through the cache. The balance changes only when a call
// completes or a pack is purchased, so a short TTL keeps the dashboard fast
// without showing stale numbers for long.
func (s *Service) GetBalance(ctx context.Context, caregiverID uuid.UUID) (*Balance, error) {
	key := "credit:balance:" + caregiverID.String()

	if raw, ok := s.cache.Get(ctx, key); ok {
		var b Balance
		if err := json.Unmarshal([]byte(raw), &b); err == nil {
			return &b, nil
		}
	}

	b, err := s.repo.GetBalance(ctx, caregiverID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(b); err == nil {
		s.cache.Set(ctx, key, string(raw), balanceTTL)
	}
	return b, nil
}

func (s *Service) ListUsage(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Usage, int, error) {
	return s.repo.ListUsage(ctx, caregiverID, limit, offset)
}

func (s *Service) ListPurchases(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Purchase, int, error) {
	return s.repo.ListPurchases(ctx, caregiverID, limit, offset)
}
