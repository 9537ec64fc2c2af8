package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	activityservice "nestegg/internal/activity/service"
	alertsservice "nestegg/internal/alerts/service"
	analyticsmodels "nestegg/internal/analytics/models"
	analyticsservice "nestegg/internal/analytics/service"
	"nestegg/internal/balance/lock"
	balanceservice "nestegg/internal/balance/service"
	balancestore "nestegg/internal/balance/store"
	contributionmodels "nestegg/internal/contribution/models"
	contributionstore "nestegg/internal/contribution/store"
	coveragemodels "nestegg/internal/coverage/models"
	coveragestore "nestegg/internal/coverage/store"
	"nestegg/internal/dashboard/metrics"
	"nestegg/internal/dashboard/models"
	"nestegg/internal/dashboard/service/mocks"
	historystore "nestegg/internal/history/store"
	profilemodels "nestegg/internal/profile/models"
	profilestore "nestegg/internal/profile/store"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/requestcontext"
)

var now = time.Date(2025, time.September, 20, 12, 0, 0, 0, time.UTC)

// ComposeSuite wires the real read models over in-memory stores.
type ComposeSuite struct {
	suite.Suite
	ctx           context.Context
	profiles      *profilestore.InMemory
	contributions *contributionstore.InMemory
	coverage      *coveragestore.InMemory
	engine        *balanceservice.Engine
	service       *Service
	userID        id.UserID
}

func TestComposeSuite(t *testing.T) {
	suite.Run(t, new(ComposeSuite))
}

func (s *ComposeSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.profiles = profilestore.NewInMemory()
	s.contributions = contributionstore.NewInMemory()
	s.coverage = coveragestore.NewInMemory()
	snapshots := balancestore.NewInMemory()
	s.engine = balanceservice.New(s.contributions, snapshots, lock.NewMemory())

	s.service = New(
		s.profiles,
		s.engine,
		s.coverage,
		alertsservice.New(s.coverage, s.contributions),
		activityservice.New(historystore.NewInMemory(), s.contributions),
		analyticsservice.New(s.profiles, s.contributions, snapshots),
	)
	s.userID = id.UserID(uuid.New())
}

func (s *ComposeSuite) TestUnknownUserFails() {
	_, err := s.service.Compose(s.ctx, s.userID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ComposeSuite) TestComposesEverySection() {
	affiliated := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.profiles.Save(s.ctx, &profilemodels.UserProfile{
		ID:           s.userID,
		FullName:     "Rosa Quispe",
		Regime:       profilemodels.RegimePrivateManager,
		FundManager:  &profilemodels.FundManagerRef{ID: id.InstitutionID(uuid.New()), Name: "AFP Prima"},
		CUSPP:        "123456ABCDE7",
		AffiliatedOn: &affiliated,
	}))
	s.Require().NoError(s.contributions.Create(s.ctx, &contributionmodels.Contribution{
		ID:            id.ContributionID(uuid.New()),
		UserID:        s.userID,
		Period:        "2025-08",
		Amount:        decimal.NewNullDecimal(decimal.NewFromInt(1000)),
		ContributedOn: time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:        contributionmodels.StatusRegistered,
	}))
	s.Require().NoError(s.engine.Recompute(s.ctx, s.userID))
	s.Require().NoError(s.coverage.SavePolicy(s.ctx, &coveragemodels.Policy{
		ID:             id.PolicyID(uuid.New()),
		UserID:         s.userID,
		Status:         coveragemodels.PolicyStatusActive,
		ExpiresOn:      now.AddDate(0, 0, 10),
		InsuredAmount:  decimal.NewFromInt(50000),
		MonthlyPremium: decimal.NewFromInt(80),
	}))

	report, err := s.service.Compose(s.ctx, s.userID)
	s.Require().NoError(err)

	s.False(report.Partial)
	s.Empty(report.FailedSections())
	s.Equal("Rosa Quispe", report.Profile.Data.FullName)
	s.True(decimal.NewFromInt(1000).Equal(report.Balance.Data.Total))
	s.True(decimal.NewFromInt(900).Equal(report.Balance.Data.Available))
	s.Equal(1, report.Coverage.Data.ActivePolicies)
	s.Require().Len(report.Alerts.Data.Alerts, 1)
	s.Equal(1, report.Alerts.Data.Total)
	s.Require().Len(report.Activity.Data, 1)
	s.Equal("Contribution registered: 2025-08", report.Activity.Data[0].Description)
	s.Require().Len(report.YearlyTotals.Data, 3)
	s.Equal(2025, report.YearlyTotals.Data[2].Year)
	s.Equal("AFP Prima", report.Regime.Data.FundManager)
	s.Equal("123456ABCDE7", report.Regime.Data.CUSPP)
	s.True(now.Equal(report.GeneratedAt))
}

func (s *ComposeSuite) TestUnaffiliatedUser() {
	s.Require().NoError(s.profiles.Save(s.ctx, &profilemodels.UserProfile{ID: s.userID, Regime: profilemodels.RegimePublicSystem}))

	report, err := s.service.Compose(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(models.NotAffiliated, report.Regime.Data.FundManager)
	s.True(report.Balance.Data.Total.IsZero())
	s.Empty(report.Activity.Data)
}

// PartialSuite drives sections through mocks to force failures.
type PartialSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	profiles *mocks.MockProfileReader
	balances *mocks.MockBalanceReader
	policies *mocks.MockPolicyReader
	alerts   *mocks.MockAlertDeriver
	activity *mocks.MockActivityFeed
	totals   *mocks.MockTotalsReader
	metrics  *metrics.Metrics
	service  *Service
	userID   id.UserID
}

func TestPartialSuite(t *testing.T) {
	suite.Run(t, new(PartialSuite))
}

func (s *PartialSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.profiles = mocks.NewMockProfileReader(s.ctrl)
	s.balances = mocks.NewMockBalanceReader(s.ctrl)
	s.policies = mocks.NewMockPolicyReader(s.ctrl)
	s.alerts = mocks.NewMockAlertDeriver(s.ctrl)
	s.activity = mocks.NewMockActivityFeed(s.ctrl)
	s.totals = mocks.NewMockTotalsReader(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.profiles, s.balances, s.policies, s.alerts, s.activity, s.totals, WithMetrics(s.metrics))
	s.userID = id.UserID(uuid.New())
}

func (s *PartialSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PartialSuite) TestFailingSectionMakesReportPartial() {
	ctx := context.Background()
	s.profiles.EXPECT().FindByID(gomock.Any(), s.userID).Return(&profilemodels.UserProfile{ID: s.userID}, nil)
	s.balances.EXPECT().Current(gomock.Any(), s.userID).Return(balanceservice.Balance{}, errors.New("snapshot store down"))
	s.policies.EXPECT().ListPoliciesByUser(gomock.Any(), s.userID).Return(nil, nil)
	s.alerts.EXPECT().Derive(gomock.Any(), s.userID).Return(nil, errors.New("coverage store down"))
	s.activity.EXPECT().Recent(gomock.Any(), s.userID, ActivityLimit).Return(nil, nil)
	s.totals.EXPECT().YearlyTotals(gomock.Any(), s.userID).Return([]analyticsmodels.YearTotal{{Year: 2025, Total: decimal.Zero}}, nil)

	report, err := s.service.Compose(ctx, s.userID)
	s.Require().NoError(err)

	s.True(report.Partial)
	s.Equal([]string{"balance", "alerts"}, report.FailedSections())
	s.Equal(models.SectionError, report.Balance.Status)
	s.Equal("section unavailable", report.Balance.Error)
	s.Equal(models.SectionOK, report.Coverage.Status)
	s.Equal(models.SectionOK, report.YearlyTotals.Status)
	s.Equal(models.SectionOK, report.Profile.Status)
	s.InDelta(1, testutil.ToFloat64(s.metrics.Partial), 0)
	s.InDelta(1, testutil.ToFloat64(s.metrics.SectionFailure.WithLabelValues("alerts")), 0)
}

func (s *PartialSuite) TestProfileFailureFailsReport() {
	s.profiles.EXPECT().FindByID(gomock.Any(), s.userID).Return(nil, sentinel.ErrNotFound)
	_, err := s.service.Compose(context.Background(), s.userID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.profiles.EXPECT().FindByID(gomock.Any(), s.userID).Return(nil, errors.New("timeout"))
	_, err = s.service.Compose(context.Background(), s.userID)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
