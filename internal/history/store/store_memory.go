package store

import (
	"context"
	"sort"
	"sync"

	"nestegg/internal/history/models"
	id "nestegg/pkg/domain"
)

// InMemory is an append-only per-user log.
type InMemory struct {
	mu      sync.RWMutex
	entries map[id.UserID][]*models.Entry
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[id.UserID][]*models.Entry)}
}

func (s *InMemory) Append(_ context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.entries[e.UserID] = append(s.entries[e.UserID], &cp)
	return nil
}

// ListByUser returns up to limit entries, newest first. A limit of zero or
// less returns everything.
func (s *InMemory) ListByUser(_ context.Context, userID id.UserID, limit int) ([]*models.Entry, error) {
	s.mu.RLock()
	src := s.entries[userID]
	out := make([]*models.Entry, 0, len(src))
	for _, e := range src {
		cp := *e
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	// Appends are chronological; reverse then stable-sort so entries sharing a
	// timestamp keep newest-appended first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
