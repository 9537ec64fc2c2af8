// Package service composes the dashboard from the other read models. Each
// section loads on its own goroutine and a failed section degrades the
// report instead of failing it.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	activitymodels "nestegg/internal/activity/models"
	alertsmodels "nestegg/internal/alerts/models"
	analyticsmodels "nestegg/internal/analytics/models"
	balanceservice "nestegg/internal/balance/service"
	coveragemodels "nestegg/internal/coverage/models"
	"nestegg/internal/dashboard/metrics"
	"nestegg/internal/dashboard/models"
	profilemodels "nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ProfileReader,BalanceReader,PolicyReader,AlertDeriver,ActivityFeed,TotalsReader

type ProfileReader interface {
	FindByID(ctx context.Context, userID id.UserID) (*profilemodels.UserProfile, error)
}

type BalanceReader interface {
	Current(ctx context.Context, userID id.UserID) (balanceservice.Balance, error)
}

type PolicyReader interface {
	ListPoliciesByUser(ctx context.Context, userID id.UserID) ([]*coveragemodels.Policy, error)
}

type AlertDeriver interface {
	Derive(ctx context.Context, userID id.UserID) (*alertsmodels.Report, error)
}

type ActivityFeed interface {
	Recent(ctx context.Context, userID id.UserID, limit int) ([]activitymodels.Event, error)
}

type TotalsReader interface {
	YearlyTotals(ctx context.Context, userID id.UserID) ([]analyticsmodels.YearTotal, error)
}

// ActivityLimit is how many feed events the dashboard shows.
const ActivityLimit = 5

type Service struct {
	profiles ProfileReader
	balances BalanceReader
	policies PolicyReader
	alerts   AlertDeriver
	activity ActivityFeed
	totals   TotalsReader
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(
	profiles ProfileReader,
	balances BalanceReader,
	policies PolicyReader,
	alerts AlertDeriver,
	activity ActivityFeed,
	totals TotalsReader,
	opts ...Option,
) *Service {
	s := &Service{
		profiles: profiles,
		balances: balances,
		policies: policies,
		alerts:   alerts,
		activity: activity,
		totals:   totals,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer("nestegg/dashboard"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compose builds the user's dashboard. Only a missing or unreadable profile
// fails the whole report.
func (s *Service) Compose(ctx context.Context, userID id.UserID) (*models.Report, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.Compose",
		trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user profile")
	}

	report := &models.Report{
		UserID:      userID,
		GeneratedAt: requestcontext.Now(ctx),
		Profile: models.OK(models.ProfileSummary{
			FullName:   profile.FullName,
			Email:      profile.Email,
			NationalID: profile.NationalID,
		}),
		Regime: models.OK(models.RegimeFrom(profile)),
	}

	// Sections share no cancellation: one failure must not abort the others.
	var g errgroup.Group
	g.Go(load(ctx, s, "balance", &report.Balance, func(ctx context.Context) (models.BalanceFigures, error) {
		b, err := s.balances.Current(ctx, userID)
		return models.BalanceFigures{Total: b.Total, Available: b.Available}, err
	}))
	g.Go(load(ctx, s, "coverage", &report.Coverage, func(ctx context.Context) (coveragemodels.Summary, error) {
		policies, err := s.policies.ListPoliciesByUser(ctx, userID)
		if err != nil {
			return coveragemodels.Summary{}, err
		}
		return coveragemodels.Summarize(policies), nil
	}))
	g.Go(load(ctx, s, "alerts", &report.Alerts, func(ctx context.Context) (alertsmodels.Report, error) {
		r, err := s.alerts.Derive(ctx, userID)
		if err != nil {
			return alertsmodels.Report{}, err
		}
		return *r, nil
	}))
	g.Go(load(ctx, s, "activity", &report.Activity, func(ctx context.Context) ([]activitymodels.Event, error) {
		return s.activity.Recent(ctx, userID, ActivityLimit)
	}))
	g.Go(load(ctx, s, "yearly_totals", &report.YearlyTotals, func(ctx context.Context) ([]analyticsmodels.YearTotal, error) {
		return s.totals.YearlyTotals(ctx, userID)
	}))
	_ = g.Wait()

	if failed := report.FailedSections(); len(failed) > 0 {
		report.Partial = true
		s.metrics.IncrementPartial()
		span.SetAttributes(attribute.StringSlice("failed_sections", failed))
	}
	span.SetAttributes(attribute.Bool("partial", report.Partial))
	return report, nil
}

// load runs fn and stores its outcome in dst. It never returns an error so
// the group always waits for every section.
func load[T any](ctx context.Context, s *Service, name string, dst *models.Section[T], fn func(context.Context) (T, error)) func() error {
	return func() error {
		data, err := fn(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "dashboard section failed",
				"request_id", requestcontext.RequestID(ctx),
				"section", name,
				"error", err,
			)
			s.metrics.IncrementSectionFailure(name)
			*dst = models.Failed[T]("section unavailable")
			return nil
		}
		*dst = models.OK(data)
		return nil
	}
}
