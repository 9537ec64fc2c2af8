package service

import (
	"context"
	"log/slog"

	"nestegg/internal/activity/models"
	contributionmodels "nestegg/internal/contribution/models"
	historymodels "nestegg/internal/history/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks HistoryReader,ContributionReader

// HistoryReader returns entries newest first; limit <= 0 means all.
type HistoryReader interface {
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]*historymodels.Entry, error)
}

// ContributionReader returns records newest first.
type ContributionReader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*contributionmodels.Contribution, error)
}

const (
	DefaultLimit = 5
	MaxLimit     = 50
	// RecentContributions is how many contributions fill a short feed.
	RecentContributions = 2
)

type Service struct {
	history       HistoryReader
	contributions ContributionReader
	logger        *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(history HistoryReader, contributions ContributionReader, opts ...Option) *Service {
	s := &Service{
		history:       history,
		contributions: contributions,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recent merges the user's query history with their latest contributions.
// History fills the feed first; contributions only top it up.
func (s *Service) Recent(ctx context.Context, userID id.UserID, limit int) ([]models.Event, error) {
	limit = ClampLimit(limit)

	entries, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load history")
	}
	events := make([]models.Event, 0, limit)
	for _, e := range entries {
		if len(events) >= limit {
			break
		}
		events = append(events, models.FromHistory(e))
	}

	if len(events) < limit {
		records, err := s.contributions.ListByUser(ctx, userID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contributions")
		}
		live := contributionmodels.Live(records)
		for i := 0; i < len(live) && i < RecentContributions && len(events) < limit; i++ {
			events = append(events, models.FromContribution(live[i]))
		}
	}

	models.SortNewestFirst(events)
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
