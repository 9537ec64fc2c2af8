// Package service computes contribution analytics: summary, comparative
// split, pension projection and year-over-year statistics.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"nestegg/internal/analytics/models"
	catalogmodels "nestegg/internal/catalog/models"
	contributionmodels "nestegg/internal/contribution/models"
	profilemodels "nestegg/internal/profile/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ProfileReader,ContributionReader,BalanceReader

type ProfileReader interface {
	FindByID(ctx context.Context, userID id.UserID) (*profilemodels.UserProfile, error)
}

type ContributionReader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*contributionmodels.Contribution, error)
	SumByUserAndYear(ctx context.Context, userID id.UserID, year int) (decimal.Decimal, error)
	SumByUserAndInstitutionType(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) (decimal.Decimal, error)
}

// BalanceReader sums the user's active balance snapshots.
type BalanceReader interface {
	SumTotal(ctx context.Context, userID id.UserID) (decimal.Decimal, error)
	SumAvailable(ctx context.Context, userID id.UserID) (decimal.Decimal, error)
}

// TrendYears is how many calendar years, ending with the current one, the
// yearly totals cover.
const TrendYears = 3

type Service struct {
	profiles      ProfileReader
	contributions ContributionReader
	balances      BalanceReader
	logger        *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(profiles ProfileReader, contributions ContributionReader, balances BalanceReader, opts ...Option) *Service {
	s := &Service{
		profiles:      profiles,
		contributions: contributions,
		balances:      balances,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Summary(ctx context.Context, userID id.UserID) (*models.Summary, error) {
	if err := s.requireProfile(ctx, userID); err != nil {
		return nil, err
	}

	total, err := s.balances.SumTotal(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum balance")
	}
	available, err := s.balances.SumAvailable(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum available balance")
	}
	split, err := s.split(ctx, userID)
	if err != nil {
		return nil, err
	}
	yearly, err := s.yearlyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.liveContributions(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		TotalBalance:         total,
		AvailableBalance:     available,
		PublicSystemTotal:    split.PublicSystem,
		PrivateManagerTotal:  split.PrivateManager,
		MonthlyProjection:    models.MonthlyPension(total),
		CurrentYearTotal:     yearly[len(yearly)-1].Total,
		YearlyTotals:         yearly,
		YearsContributed:     yearsContributed(records),
		PublicSystemStatus:   systemStatus(records, catalogmodels.InstitutionTypePublicSystem),
		PrivateManagerStatus: systemStatus(records, catalogmodels.InstitutionTypePrivateManager),
	}, nil
}

func (s *Service) Comparative(ctx context.Context, userID id.UserID) (*models.Comparative, error) {
	if err := s.requireProfile(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.split(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Projection(ctx context.Context, userID id.UserID) (*models.Projection, error) {
	if err := s.requireProfile(ctx, userID); err != nil {
		return nil, err
	}
	total, err := s.balances.SumTotal(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum balance")
	}
	p := models.NewProjection(total, requestcontext.Now(ctx))
	return &p, nil
}

func (s *Service) Statistics(ctx context.Context, userID id.UserID) (*models.Statistics, error) {
	if err := s.requireProfile(ctx, userID); err != nil {
		return nil, err
	}
	split, err := s.split(ctx, userID)
	if err != nil {
		return nil, err
	}
	yearly, err := s.yearlyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	current := yearly[len(yearly)-1]
	previous := yearly[len(yearly)-2]

	return &models.Statistics{
		Distribution: split,
		Trend:        yearly,
		YearOverYear: models.NewYearOverYear(current.Year, current.Total, previous.Total),
	}, nil
}

// YearlyTotals returns contribution totals for the last TrendYears calendar
// years, oldest first, with zero for years without contributions.
func (s *Service) YearlyTotals(ctx context.Context, userID id.UserID) ([]models.YearTotal, error) {
	return s.yearlyTotals(ctx, userID)
}

// YearsContributed counts distinct calendar years with at least one live
// contribution. It is an indicator only, not a statutory tenure figure.
func (s *Service) YearsContributed(ctx context.Context, userID id.UserID) (int, error) {
	records, err := s.liveContributions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return yearsContributed(records), nil
}

func (s *Service) requireProfile(ctx context.Context, userID id.UserID) error {
	if _, err := s.profiles.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user profile")
	}
	return nil
}

func (s *Service) split(ctx context.Context, userID id.UserID) (models.Comparative, error) {
	public, err := s.contributions.SumByUserAndInstitutionType(ctx, userID, catalogmodels.InstitutionTypePublicSystem)
	if err != nil {
		return models.Comparative{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum public system contributions")
	}
	private, err := s.contributions.SumByUserAndInstitutionType(ctx, userID, catalogmodels.InstitutionTypePrivateManager)
	if err != nil {
		return models.Comparative{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum private manager contributions")
	}
	return models.NewComparative(public, private), nil
}

func (s *Service) yearlyTotals(ctx context.Context, userID id.UserID) ([]models.YearTotal, error) {
	current := requestcontext.Today(ctx).Year()
	out := make([]models.YearTotal, 0, TrendYears)
	for year := current - TrendYears + 1; year <= current; year++ {
		total, err := s.contributions.SumByUserAndYear(ctx, userID, year)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sum yearly contributions")
		}
		out = append(out, models.YearTotal{Year: year, Total: total})
	}
	return out, nil
}

func (s *Service) liveContributions(ctx context.Context, userID id.UserID) ([]*contributionmodels.Contribution, error) {
	records, err := s.contributions.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributions")
	}
	return contributionmodels.Live(records), nil
}

func yearsContributed(records []*contributionmodels.Contribution) int {
	years := make(map[int]struct{}, len(records))
	for _, c := range records {
		years[c.Year()] = struct{}{}
	}
	return len(years)
}

func systemStatus(records []*contributionmodels.Contribution, t catalogmodels.InstitutionType) models.SystemStatus {
	for _, c := range records {
		if c.InSystem(t) {
			return models.SystemStatusActive
		}
	}
	return models.SystemStatusNoRecord
}
