// Package service rebuilds a user's balance snapshot from their full
// contribution history.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nestegg/internal/balance/metrics"
	"nestegg/internal/balance/models"
	contributionmodels "nestegg/internal/contribution/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/requestcontext"
)

//go:generate mockgen -source=engine.go -destination=mocks/mocks.go -package=mocks ContributionReader,SnapshotStore,Locker

// ContributionReader returns every contribution of a user, newest first.
type ContributionReader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*contributionmodels.Contribution, error)
}

type SnapshotStore interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Snapshot, error)
	ListActiveByUser(ctx context.Context, userID id.UserID) ([]*models.Snapshot, error)
	Create(ctx context.Context, snap *models.Snapshot) error
	Update(ctx context.Context, snap *models.Snapshot) error
	SumTotal(ctx context.Context, userID id.UserID) (decimal.Decimal, error)
	SumAvailable(ctx context.Context, userID id.UserID) (decimal.Decimal, error)
}

// Locker runs fn while holding the recompute lock for userID.
type Locker interface {
	WithUserLock(ctx context.Context, userID id.UserID, fn func(ctx context.Context) error) error
}

const (
	resultCreated      = "created"
	resultUpdated      = "updated"
	resultSkippedEmpty = "skipped_empty"
	resultFailed       = "failed"
)

// Engine recomputes balance snapshots. Recomputes for one user are serialized
// by the Locker; recomputes for different users run in parallel.
type Engine struct {
	contributions ContributionReader
	snapshots     SnapshotStore
	locker        Locker
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

func New(contributions ContributionReader, snapshots SnapshotStore, locker Locker, opts ...Option) *Engine {
	e := &Engine{
		contributions: contributions,
		snapshots:     snapshots,
		locker:        locker,
		logger:        slog.New(slog.DiscardHandler),
		tracer:        otel.Tracer("nestegg/balance"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recompute rebuilds the snapshot of userID from scratch.
//
// A user with no live contributions is left untouched: any snapshot written
// before their last contribution was removed stays as it was.
func (e *Engine) Recompute(ctx context.Context, userID id.UserID) (err error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "balance.Recompute",
		trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	result := resultFailed
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "recompute failed")
			result = resultFailed
		}
		span.SetAttributes(attribute.String("result", result))
		e.metrics.ObserveRecompute(start, result)
	}()

	err = e.locker.WithUserLock(ctx, userID, func(ctx context.Context) error {
		var innerErr error
		result, innerErr = e.recompute(ctx, userID)
		return innerErr
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "balance recompute lock unavailable")
		}
		if _, ok := dErrors.As(err); ok {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to recompute balance")
	}
	return nil
}

func (e *Engine) recompute(ctx context.Context, userID id.UserID) (string, error) {
	all, err := e.contributions.ListByUser(ctx, userID)
	if err != nil {
		return resultFailed, fmt.Errorf("load contributions: %w", err)
	}
	live := contributionmodels.Live(all)
	if len(live) == 0 {
		e.logger.DebugContext(ctx, "no live contributions, snapshot left as is",
			"user_id", userID,
		)
		return resultSkippedEmpty, nil
	}

	figures := models.Derive(contributionmodels.Sum(live))
	fundType := live[0].FundTypeID
	today := requestcontext.Today(ctx)

	existing, err := e.snapshots.ListByUser(ctx, userID)
	if err != nil {
		return resultFailed, fmt.Errorf("load snapshots: %w", err)
	}

	if len(existing) > 0 {
		if len(existing) > 1 {
			e.metrics.IncrementDuplicateSnapshots()
			e.logger.WarnContext(ctx, "multiple balance snapshots for user, updating the first",
				"user_id", userID,
				"count", len(existing),
			)
		}
		snap := existing[0]
		snap.Apply(figures, fundType, today)
		if err := e.snapshots.Update(ctx, snap); err != nil {
			return resultFailed, fmt.Errorf("update snapshot: %w", err)
		}
		e.logger.InfoContext(ctx, "balance snapshot updated",
			"user_id", userID,
			"total", figures.Total.String(),
			"version", snap.Version,
		)
		return resultUpdated, nil
	}

	snap := &models.Snapshot{
		ID:     id.SnapshotID(uuid.New()),
		UserID: userID,
		Status: models.StatusActive,
	}
	snap.Apply(figures, fundType, today)
	if err := e.snapshots.Create(ctx, snap); err != nil {
		return resultFailed, fmt.Errorf("create snapshot: %w", err)
	}
	e.logger.InfoContext(ctx, "balance snapshot created",
		"user_id", userID,
		"total", figures.Total.String(),
	)
	return resultCreated, nil
}

// Balance is the pair of active-snapshot sums read by the dashboard and analytics.
type Balance struct {
	Total     decimal.Decimal
	Available decimal.Decimal
}

// Current sums the user's active snapshots. A user with none has a zero balance.
func (e *Engine) Current(ctx context.Context, userID id.UserID) (Balance, error) {
	total, err := e.snapshots.SumTotal(ctx, userID)
	if err != nil {
		return Balance{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum balance total")
	}
	available, err := e.snapshots.SumAvailable(ctx, userID)
	if err != nil {
		return Balance{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum available balance")
	}
	return Balance{Total: total, Available: available}, nil
}

// Snapshot returns the user's first active snapshot.
func (e *Engine) Snapshot(ctx context.Context, userID id.UserID) (*models.Snapshot, error) {
	active, err := e.snapshots.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load balance snapshot")
	}
	if len(active) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "balance snapshot not found")
	}
	return active[0], nil
}
