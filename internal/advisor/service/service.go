package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"nestegg/internal/advisor/models"
	contributionmodels "nestegg/internal/contribution/models"
	coveragemodels "nestegg/internal/coverage/models"
	profilemodels "nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
)

type ProfileReader interface {
	FindByID(ctx context.Context, userID id.UserID) (*profilemodels.UserProfile, error)
}

type BalanceReader interface {
	SumTotal(ctx context.Context, userID id.UserID) (decimal.Decimal, error)
}

type ContributionReader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*contributionmodels.Contribution, error)
}

type PolicyReader interface {
	ListPoliciesByUser(ctx context.Context, userID id.UserID) ([]*coveragemodels.Policy, error)
}

type Service struct {
	profiles      ProfileReader
	balances      BalanceReader
	contributions ContributionReader
	policies      PolicyReader
	logger        *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(profiles ProfileReader, balances BalanceReader, contributions ContributionReader, policies PolicyReader, opts ...Option) *Service {
	s := &Service{
		profiles:      profiles,
		balances:      balances,
		contributions: contributions,
		policies:      policies,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Context gathers the facts the assistant is told about a user.
func (s *Service) Context(ctx context.Context, userID id.UserID) (*models.FinancialContext, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user profile")
	}

	total, err := s.balances.SumTotal(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum balance")
	}
	records, err := s.contributions.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributions")
	}
	policies, err := s.policies.ListPoliciesByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}

	summary := coveragemodels.Summarize(policies)
	return &models.FinancialContext{
		Regime:            profile.Regime,
		FundManager:       profile.FundManagerName(),
		TotalBalance:      total,
		ContributionCount: len(contributionmodels.Live(records)),
		PolicyCount:       summary.TotalPolicies,
		ActivePolicies:    summary.ActivePolicies,
	}, nil
}
