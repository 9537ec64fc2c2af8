package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	catalogmodels "nestegg/internal/catalog/models"
	"nestegg/internal/contribution/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

// InMemory stores contributions in process. Lists are returned newest first
// (contribution date, then creation time).
type InMemory struct {
	mu      sync.RWMutex
	records map[id.ContributionID]*models.Contribution
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.ContributionID]*models.Contribution)}
}

func (s *InMemory) Create(_ context.Context, c *models.Contribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[c.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[c.ID] = clone(c)
	return nil
}

func (s *InMemory) Update(_ context.Context, c *models.Contribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[c.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.records[c.ID] = clone(c)
	return nil
}

func (s *InMemory) Delete(_ context.Context, contributionID id.ContributionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[contributionID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.records, contributionID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, contributionID id.ContributionID) (*models.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.records[contributionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(c), nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*models.Contribution, error) {
	return s.filter(func(c *models.Contribution) bool {
		return c.UserID == userID
	}), nil
}

func (s *InMemory) ListByUserAndYear(_ context.Context, userID id.UserID, year int) ([]*models.Contribution, error) {
	return s.filter(func(c *models.Contribution) bool {
		return c.UserID == userID && c.Year() == year
	}), nil
}

func (s *InMemory) ListByUserAndInstitutionType(_ context.Context, userID id.UserID, t catalogmodels.InstitutionType) ([]*models.Contribution, error) {
	return s.filter(func(c *models.Contribution) bool {
		return c.UserID == userID && c.InSystem(t)
	}), nil
}

func (s *InMemory) SumByUser(ctx context.Context, userID id.UserID) (decimal.Decimal, error) {
	records, _ := s.ListByUser(ctx, userID)
	return models.Sum(records), nil
}

func (s *InMemory) SumByUserAndYear(ctx context.Context, userID id.UserID, year int) (decimal.Decimal, error) {
	records, _ := s.ListByUserAndYear(ctx, userID, year)
	return models.Sum(records), nil
}

func (s *InMemory) SumByUserAndInstitutionType(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) (decimal.Decimal, error) {
	records, _ := s.ListByUserAndInstitutionType(ctx, userID, t)
	return models.Sum(records), nil
}

func (s *InMemory) filter(keep func(*models.Contribution) bool) []*models.Contribution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Contribution, 0)
	for _, c := range s.records {
		if keep(c) {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ContributedOn.Equal(out[j].ContributedOn) {
			return out[i].ContributedOn.After(out[j].ContributedOn)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func clone(c *models.Contribution) *models.Contribution {
	cp := *c
	if c.Institution != nil {
		inst := *c.Institution
		cp.Institution = &inst
	}
	if c.FundTypeID != nil {
		ft := *c.FundTypeID
		cp.FundTypeID = &ft
	}
	if c.DaysWorked != nil {
		d := *c.DaysWorked
		cp.DaysWorked = &d
	}
	return &cp
}
