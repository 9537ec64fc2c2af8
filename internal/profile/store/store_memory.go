package store

import (
	"context"
	"sync"

	"nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.UserID]*models.UserProfile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[id.UserID]*models.UserProfile)}
}

// Save inserts or replaces a profile.
func (s *InMemory) Save(_ context.Context, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = clone(p)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(p), nil
}

func clone(p *models.UserProfile) *models.UserProfile {
	cp := *p
	if p.FundManager != nil {
		fm := *p.FundManager
		cp.FundManager = &fm
	}
	if p.AffiliatedOn != nil {
		t := *p.AffiliatedOn
		cp.AffiliatedOn = &t
	}
	return &cp
}
