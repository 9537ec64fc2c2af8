package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"nestegg/internal/activity/models"
	"nestegg/internal/activity/service/mocks"
	contributionmodels "nestegg/internal/contribution/models"
	contributionstore "nestegg/internal/contribution/store"
	historymodels "nestegg/internal/history/models"
	historystore "nestegg/internal/history/store"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

type ActivitySuite struct {
	suite.Suite
	ctx           context.Context
	history       *historystore.InMemory
	contributions *contributionstore.InMemory
	service       *Service
	userID        id.UserID
}

func TestActivitySuite(t *testing.T) {
	suite.Run(t, new(ActivitySuite))
}

func (s *ActivitySuite) SetupTest() {
	s.ctx = context.Background()
	s.history = historystore.NewInMemory()
	s.contributions = contributionstore.NewInMemory()
	s.service = New(s.history, s.contributions)
	s.userID = id.UserID(uuid.New())
}

func (s *ActivitySuite) query(kind historymodels.Kind, detail string, at time.Time) {
	s.Require().NoError(s.history.Append(s.ctx, &historymodels.Entry{
		ID:         id.HistoryEntryID(uuid.New()),
		UserID:     s.userID,
		Kind:       kind,
		Detail:     detail,
		Result:     historymodels.ResultSuccess,
		OccurredAt: at,
	}))
}

func (s *ActivitySuite) contributed(period id.Period, amount string, on time.Time, status contributionmodels.Status) {
	s.Require().NoError(s.contributions.Create(s.ctx, &contributionmodels.Contribution{
		ID:            id.ContributionID(uuid.New()),
		UserID:        s.userID,
		Period:        period,
		Amount:        decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		ContributedOn: on,
		Status:        status,
	}))
}

func (s *ActivitySuite) TestMergesHistoryAndContributionsNewestFirst() {
	s.query(historymodels.KindYield, "fund yield", time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC))
	s.query(historymodels.KindInsurance, "policy lookup", time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC))
	s.contributed("2025-05", "300", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), contributionmodels.StatusRegistered)
	s.contributed("2025-04", "250", time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), contributionmodels.StatusRegistered)
	s.contributed("2025-03", "200", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), contributionmodels.StatusRegistered)

	events, err := s.service.Recent(s.ctx, s.userID, 5)
	s.Require().NoError(err)
	s.Require().Len(events, 4)

	s.Equal("fund yield", events[0].Description)
	s.Equal(models.IconYield, events[0].Icon)
	s.Equal("Contribution registered: 2025-05", events[1].Description)
	s.Equal(models.IconContribution, events[1].Icon)
	s.Require().NotNil(events[1].Amount)
	s.True(decimal.NewFromInt(300).Equal(*events[1].Amount))
	s.Equal("Contribution registered: 2025-04", events[2].Description)
	s.Equal(models.IconInsurance, events[3].Icon)
}

func (s *ActivitySuite) TestHistoryFillsFeedBeforeContributions() {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 4 {
		s.query(historymodels.KindProjection, "projection", base.AddDate(0, 0, i))
	}
	s.contributed("2025-06", "100", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), contributionmodels.StatusRegistered)
	s.contributed("2025-05", "100", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), contributionmodels.StatusRegistered)

	events, err := s.service.Recent(s.ctx, s.userID, 5)
	s.Require().NoError(err)
	s.Require().Len(events, 5)

	contributions := 0
	for _, e := range events {
		if e.Kind == models.KindContribution {
			contributions++
		}
	}
	s.Equal(1, contributions)
	s.Equal("Contribution registered: 2025-06", events[0].Description)
}

func (s *ActivitySuite) TestSkipsDeletedContributions() {
	s.contributed("2025-06", "100", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), contributionmodels.StatusDeleted)
	s.contributed("2025-05", "100", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), contributionmodels.StatusProcessed)

	events, err := s.service.Recent(s.ctx, s.userID, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("Contribution registered: 2025-05", events[0].Description)
}

func (s *ActivitySuite) TestNormalizesTimestampsToUTC() {
	lima := time.FixedZone("PET", -5*60*60)
	// 2025-05-31 21:00 in Lima is 2025-06-01 02:00 UTC, after a contribution dated 2025-06-01.
	s.query(historymodels.KindOther, "late query", time.Date(2025, 5, 31, 21, 0, 0, 0, lima))
	s.contributed("2025-06", "100", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), contributionmodels.StatusRegistered)

	events, err := s.service.Recent(s.ctx, s.userID, 5)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("late query", events[0].Description)
	s.Equal(time.UTC, events[0].OccurredAt.Location())
	s.Equal(models.IconDefault, events[0].Icon)
}

func (s *ActivitySuite) TestEmptyFeed() {
	events, err := s.service.Recent(s.ctx, s.userID, 5)
	s.Require().NoError(err)
	s.Empty(events)
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{-3: DefaultLimit, 0: DefaultLimit, 1: 1, 50: 50, 500: MaxLimit} {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRecentContributionLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryReader(ctrl)
	contributions := mocks.NewMockContributionReader(ctrl)
	userID := id.UserID(uuid.New())

	history.EXPECT().ListByUser(gomock.Any(), userID, DefaultLimit).Return(nil, nil)
	contributions.EXPECT().ListByUser(gomock.Any(), userID).Return(nil, errors.New("connection refused"))

	_, err := New(history, contributions).Recent(context.Background(), userID, 0)
	if !dErrors.HasCode(err, dErrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRecentSkipsContributionsWhenHistoryIsFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryReader(ctrl)
	contributions := mocks.NewMockContributionReader(ctrl)
	userID := id.UserID(uuid.New())

	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	history.EXPECT().ListByUser(gomock.Any(), userID, 1).Return([]*historymodels.Entry{
		{Kind: historymodels.KindYield, OccurredAt: at},
	}, nil)

	events, err := New(history, contributions).Recent(context.Background(), userID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Icon != models.IconYield {
		t.Fatalf("unexpected events %+v", events)
	}
}
