package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"nestegg/internal/balance/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

// InMemory keeps at most one snapshot per user, mirroring the unique index
// the Postgres schema enforces.
type InMemory struct {
	mu     sync.RWMutex
	byUser map[id.UserID]*models.Snapshot
}

func NewInMemory() *InMemory {
	return &InMemory{byUser: make(map[id.UserID]*models.Snapshot)}
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.byUser[userID]
	if !ok {
		return []*models.Snapshot{}, nil
	}
	return []*models.Snapshot{clone(snap)}, nil
}

func (s *InMemory) ListActiveByUser(ctx context.Context, userID id.UserID) ([]*models.Snapshot, error) {
	all, _ := s.ListByUser(ctx, userID)
	out := make([]*models.Snapshot, 0, len(all))
	for _, snap := range all {
		if snap.IsActive() {
			out = append(out, snap)
		}
	}
	return out, nil
}

// Create stores a new snapshot at version 1. A second snapshot for the same
// user is rejected with sentinel.ErrConflict.
func (s *InMemory) Create(_ context.Context, snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUser[snap.UserID]; exists {
		return sentinel.ErrConflict
	}
	snap.Version = 1
	s.byUser[snap.UserID] = clone(snap)
	return nil
}

// Update writes snap if the stored version still matches snap.Version, then
// bumps the version on both copies.
func (s *InMemory) Update(_ context.Context, snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byUser[snap.UserID]
	if !ok || current.ID != snap.ID {
		return sentinel.ErrNotFound
	}
	if current.Version != snap.Version {
		return sentinel.ErrConflict
	}
	snap.Version++
	s.byUser[snap.UserID] = clone(snap)
	return nil
}

func (s *InMemory) SumTotal(ctx context.Context, userID id.UserID) (decimal.Decimal, error) {
	return s.sum(ctx, userID, func(f models.Figures) decimal.Decimal { return f.Total })
}

func (s *InMemory) SumAvailable(ctx context.Context, userID id.UserID) (decimal.Decimal, error) {
	return s.sum(ctx, userID, func(f models.Figures) decimal.Decimal { return f.Available })
}

func (s *InMemory) sum(ctx context.Context, userID id.UserID, pick func(models.Figures) decimal.Decimal) (decimal.Decimal, error) {
	active, _ := s.ListActiveByUser(ctx, userID)
	total := decimal.Zero
	for _, snap := range active {
		total = total.Add(pick(snap.Figures))
	}
	return total, nil
}

func clone(snap *models.Snapshot) *models.Snapshot {
	cp := *snap
	if snap.FundTypeID != nil {
		ft := *snap.FundTypeID
		cp.FundTypeID = &ft
	}
	return &cp
}
