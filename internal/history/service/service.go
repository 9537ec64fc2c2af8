// Package service records and lists a user's query history.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"nestegg/internal/history/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/requestcontext"
)

type Store interface {
	Append(ctx context.Context, e *models.Entry) error
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]*models.Entry, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends an entry stamped with the request clock.
func (s *Service) Record(ctx context.Context, userID id.UserID, req *models.RecordRequest) (*models.Entry, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &models.Entry{
		ID:         id.HistoryEntryID(uuid.New()),
		UserID:     userID,
		Kind:       req.Kind,
		Detail:     req.Detail,
		Result:     req.Result,
		OccurredAt: requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.Append(ctx, e); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record history entry")
	}
	s.logger.DebugContext(ctx, "history entry recorded",
		"user_id", userID,
		"kind", e.Kind,
	)
	return e, nil
}

// List returns up to limit entries, newest first.
func (s *Service) List(ctx context.Context, userID id.UserID, limit int) ([]*models.Entry, error) {
	entries, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list history")
	}
	return entries, nil
}
