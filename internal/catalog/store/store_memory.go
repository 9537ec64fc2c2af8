package store

import (
	"context"
	"sync"

	"nestegg/internal/catalog/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

// InMemory keeps institutions in insertion order.
type InMemory struct {
	mu    sync.RWMutex
	byID  map[id.InstitutionID]*models.Institution
	order []id.InstitutionID
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.InstitutionID]*models.Institution)}
}

func (s *InMemory) Create(_ context.Context, inst *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[inst.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *inst
	s.byID[inst.ID] = &cp
	s.order = append(s.order, inst.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, instID id.InstitutionID) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.byID[instID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (s *InMemory) ListByType(_ context.Context, t models.InstitutionType) ([]*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Institution
	for _, instID := range s.order {
		inst := s.byID[instID]
		if inst.Type == t {
			cp := *inst
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Institution, 0, len(s.order))
	for _, instID := range s.order {
		cp := *s.byID[instID]
		out = append(out, &cp)
	}
	return out, nil
}
