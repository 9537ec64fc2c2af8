package store

import (
	"context"
	"sort"
	"sync"

	"nestegg/internal/coverage/models"
	id "nestegg/pkg/domain"
)

// InMemory holds policies, payments and procedures in process. Coverage data
// is read-only to this module; Save* exists for seeding and tests.
type InMemory struct {
	mu         sync.RWMutex
	policies   map[id.PolicyID]*models.Policy
	payments   map[id.PaymentID]*models.Payment
	procedures map[id.ProcedureID]*models.Procedure
}

func NewInMemory() *InMemory {
	return &InMemory{
		policies:   make(map[id.PolicyID]*models.Policy),
		payments:   make(map[id.PaymentID]*models.Payment),
		procedures: make(map[id.ProcedureID]*models.Procedure),
	}
}

func (s *InMemory) SavePolicy(_ context.Context, p *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.policies[p.ID] = &cp
	return nil
}

func (s *InMemory) SavePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.payments[p.ID] = &cp
	return nil
}

func (s *InMemory) SaveProcedure(_ context.Context, p *models.Procedure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.procedures[p.ID] = &cp
	return nil
}

// ListPoliciesByUser returns policies ordered by expiry, soonest first.
func (s *InMemory) ListPoliciesByUser(_ context.Context, userID id.UserID) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Policy, 0)
	for _, p := range s.policies {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiresOn.Equal(out[j].ExpiresOn) {
			return out[i].ExpiresOn.Before(out[j].ExpiresOn)
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (s *InMemory) ListPendingPaymentsByUser(_ context.Context, userID id.UserID) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Payment, 0)
	for _, p := range s.payments {
		if p.UserID == userID && p.IsPending() {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Installment < out[j].Installment
	})
	return out, nil
}

// ListOpenProceduresByUser returns pending and in-process procedures, newest first.
func (s *InMemory) ListOpenProceduresByUser(_ context.Context, userID id.UserID) ([]*models.Procedure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Procedure, 0)
	for _, p := range s.procedures {
		if p.UserID == userID && p.IsOpen() {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

func (s *InMemory) CountOpenProceduresByUser(ctx context.Context, userID id.UserID) (int, error) {
	open, _ := s.ListOpenProceduresByUser(ctx, userID)
	return len(open), nil
}
