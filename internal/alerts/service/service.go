// Package service derives operational alerts from a user's coverage and
// contribution records. Nothing is stored; every call re-evaluates the rules.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/alerts/metrics"
	"nestegg/internal/alerts/models"
	contributionmodels "nestegg/internal/contribution/models"
	coveragemodels "nestegg/internal/coverage/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CoverageReader,ContributionReader

type CoverageReader interface {
	ListPoliciesByUser(ctx context.Context, userID id.UserID) ([]*coveragemodels.Policy, error)
	ListPendingPaymentsByUser(ctx context.Context, userID id.UserID) ([]*coveragemodels.Payment, error)
	CountOpenProceduresByUser(ctx context.Context, userID id.UserID) (int, error)
}

type ContributionReader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*contributionmodels.Contribution, error)
}

const (
	// ExpiryWindowDays is how far ahead, inclusive, a policy expiry raises an alert.
	ExpiryWindowDays = 30
	// RecencyMonths is how long a user may go without a contribution before
	// the stale-contributions alert fires.
	RecencyMonths = 3
)

// rule evaluates one alert condition. A nil alert means the condition does not hold.
type rule func(ctx context.Context, userID id.UserID, today time.Time) (*models.Alert, error)

type Service struct {
	coverage      CoverageReader
	contributions ContributionReader
	logger        *slog.Logger
	metrics       *metrics.Metrics
	rules         []rule
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

func New(coverage CoverageReader, contributions ContributionReader, opts ...Option) *Service {
	s := &Service{
		coverage:      coverage,
		contributions: contributions,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	// Order is part of the contract: clients render alerts as listed.
	s.rules = []rule{
		s.expiringPolicies,
		s.pendingPayments,
		s.pendingProcedures,
		s.staleContributions,
	}
	return s
}

// Derive evaluates every rule against the request date.
func (s *Service) Derive(ctx context.Context, userID id.UserID) (*models.Report, error) {
	today := requestcontext.Today(ctx)

	alerts := make([]models.Alert, 0, len(s.rules))
	for _, evaluate := range s.rules {
		alert, err := evaluate(ctx, userID, today)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to derive alerts")
		}
		if alert == nil {
			continue
		}
		s.metrics.IncrementDerived(string(alert.Severity))
		alerts = append(alerts, *alert)
	}

	report := models.NewReport(alerts)
	s.logger.DebugContext(ctx, "alerts derived",
		"user_id", userID,
		"alerts", len(report.Alerts),
		"total", report.Total,
	)
	return &report, nil
}

func (s *Service) expiringPolicies(ctx context.Context, userID id.UserID, today time.Time) (*models.Alert, error) {
	policies, err := s.coverage.ListPoliciesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	n := 0
	for _, p := range policies {
		if p.ExpiresWithin(today, ExpiryWindowDays) {
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	return &models.Alert{
		Kind:     models.KindExpiringPolicies,
		Severity: models.SeverityWarning,
		Title:    "Policies about to expire",
		Message:  fmt.Sprintf("%d policies expire in the next %d days", n, ExpiryWindowDays),
		Count:    &n,
		Hint:     models.HintAlertTriangle,
	}, nil
}

func (s *Service) pendingPayments(ctx context.Context, userID id.UserID, _ time.Time) (*models.Alert, error) {
	pending, err := s.coverage.ListPendingPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}
	n := len(pending)
	if n == 0 {
		return nil, nil
	}
	amount := decimal.Zero
	for _, p := range pending {
		amount = amount.Add(p.AmountPaid)
	}
	return &models.Alert{
		Kind:     models.KindPendingPayments,
		Severity: models.SeverityDanger,
		Title:    "Pending premium payments",
		Message:  fmt.Sprintf("%d payments pending", n),
		Count:    &n,
		Amount:   &amount,
		Hint:     models.HintCreditCard,
	}, nil
}

func (s *Service) pendingProcedures(ctx context.Context, userID id.UserID, _ time.Time) (*models.Alert, error) {
	n, err := s.coverage.CountOpenProceduresByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count open procedures: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return &models.Alert{
		Kind:     models.KindPendingProcedures,
		Severity: models.SeverityInfo,
		Title:    "Procedures in progress",
		Message:  fmt.Sprintf("%d procedures awaiting resolution", n),
		Count:    &n,
		Hint:     models.HintFileText,
	}, nil
}

func (s *Service) staleContributions(ctx context.Context, userID id.UserID, today time.Time) (*models.Alert, error) {
	records, err := s.contributions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	cutoff := id.MonthsBefore(today, RecencyMonths)
	for _, c := range contributionmodels.Live(records) {
		if contributionmodels.DateOnly(c.ContributedOn).After(cutoff) {
			return nil, nil
		}
	}
	return &models.Alert{
		Kind:     models.KindStaleContributions,
		Severity: models.SeverityWarning,
		Title:    "No recent contributions",
		Message:  fmt.Sprintf("No contributions registered in the last %d months", RecencyMonths),
		Hint:     models.HintAlertCircle,
	}, nil
}
