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

	"nestegg/internal/balance/lock"
	balanceservice "nestegg/internal/balance/service"
	balancestore "nestegg/internal/balance/store"
	catalogmodels "nestegg/internal/catalog/models"
	catalogstore "nestegg/internal/catalog/store"
	"nestegg/internal/contribution/attribution"
	"nestegg/internal/contribution/events"
	"nestegg/internal/contribution/models"
	"nestegg/internal/contribution/service/mocks"
	"nestegg/internal/contribution/store"
	profilemodels "nestegg/internal/profile/models"
	profilestore "nestegg/internal/profile/store"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/requestcontext"
)

var fixedNow = time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC)

// =============================================================================
// Lifecycle against in-memory collaborators
// =============================================================================

type LifecycleSuite struct {
	suite.Suite
	ctx       context.Context
	catalog   *catalogstore.InMemory
	profiles  *profilestore.InMemory
	records   *store.InMemory
	snapshots *balancestore.InMemory
	published []events.Event
	service   *Service
	prima     *catalogmodels.Institution
	userID    id.UserID
}

type recordingPublisher struct {
	out *[]events.Event
}

func (p recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	*p.out = append(*p.out, ev)
	return nil
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), fixedNow)
	s.catalog = catalogstore.NewInMemory()
	s.profiles = profilestore.NewInMemory()
	s.records = store.NewInMemory()
	s.snapshots = balancestore.NewInMemory()
	s.published = nil

	s.addInstitution("ONP", catalogmodels.InstitutionTypePublicSystem)
	s.addInstitution("AFP Integra", catalogmodels.InstitutionTypePrivateManager)
	s.prima = s.addInstitution("AFP Prima", catalogmodels.InstitutionTypePrivateManager)

	s.userID = id.UserID(uuid.New())
	s.Require().NoError(s.profiles.Save(s.ctx, &profilemodels.UserProfile{
		ID:          s.userID,
		FullName:    "Rosa Quispe",
		Regime:      profilemodels.RegimePrivateManager,
		FundManager: &profilemodels.FundManagerRef{ID: s.prima.ID, Name: "Prima"},
	}))

	engine := balanceservice.New(s.records, s.snapshots, lock.NewMemory())
	s.service = New(s.records, s.profiles, s.catalog, attribution.New(s.catalog), engine,
		WithPublisher(recordingPublisher{out: &s.published}))
}

func (s *LifecycleSuite) addInstitution(name string, t catalogmodels.InstitutionType) *catalogmodels.Institution {
	inst := &catalogmodels.Institution{ID: id.InstitutionID(uuid.New()), Name: name, Type: t, Status: "active"}
	s.Require().NoError(s.catalog.Create(s.ctx, inst))
	return inst
}

func (s *LifecycleSuite) createRequest(amount int64, period string, on time.Time) *models.CreateRequest {
	return &models.CreateRequest{
		UserID: s.userID,
		ContributionInput: models.ContributionInput{
			Period:        period,
			Amount:        decimal.NewNullDecimal(decimal.NewFromInt(amount)),
			ContributedOn: on,
		},
	}
}

func (s *LifecycleSuite) snapshotTotal() decimal.Decimal {
	all, err := s.snapshots.ListByUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	return all[0].Total
}

func (s *LifecycleSuite) TestCreateAttributesAndRecomputes() {
	c, err := s.service.Create(s.ctx, s.createRequest(1000, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.Require().NotNil(c.Institution)
	s.Equal(s.prima.ID, c.Institution.ID)
	s.Equal("AFP Prima", c.Institution.Name)
	s.Equal(models.StatusRegistered, c.Status)
	s.Equal(fixedNow, c.CreatedAt)

	all, err := s.snapshots.ListByUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	snap := all[0]
	s.True(decimal.NewFromInt(1000).Equal(snap.Total))
	s.True(decimal.NewFromInt(900).Equal(snap.Available))
	s.True(decimal.NewFromInt(600).Equal(snap.Capitalization))
	s.True(decimal.NewFromInt(400).Equal(snap.Voluntary))
	s.True(decimal.NewFromInt(50).Equal(snap.AccumulatedYield))

	s.Require().Len(s.published, 1)
	s.Equal(events.KindCreated, s.published[0].Kind)
	s.Equal(c.ID.String(), s.published[0].ContributionID)
}

func (s *LifecycleSuite) TestUpdateRecomputesAndKeepsOwner() {
	c, err := s.service.Create(s.ctx, s.createRequest(1000, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, c.ID, &models.ContributionInput{
		Period:        "2025-05",
		Amount:        decimal.NewNullDecimal(decimal.NewFromInt(1200)),
		ContributedOn: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		Status:        models.StatusProcessed,
	})
	s.Require().NoError(err)

	s.Equal(s.userID, updated.UserID)
	s.Equal(models.StatusProcessed, updated.Status)
	s.True(decimal.NewFromInt(1200).Equal(s.snapshotTotal()))
	s.Require().Len(s.published, 2)
	s.Equal(events.KindUpdated, s.published[1].Kind)
}

func (s *LifecycleSuite) TestAttributionFollowsProfileAtWriteTime() {
	first, err := s.service.Create(s.ctx, s.createRequest(100, "2025-04", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.Require().NoError(s.profiles.Save(s.ctx, &profilemodels.UserProfile{
		ID:     s.userID,
		Regime: profilemodels.RegimePublicSystem,
	}))
	second, err := s.service.Create(s.ctx, s.createRequest(100, "2025-05", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	stored, err := s.records.FindByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("AFP Prima", stored.Institution.Name, "earlier records are never re-attributed")
	s.Equal("ONP", second.Institution.Name)
}

func (s *LifecycleSuite) TestDeleteLastContributionLeavesStaleSnapshot() {
	c, err := s.service.Create(s.ctx, s.createRequest(500, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(s.ctx, c.ID))

	_, err = s.service.Get(s.ctx, c.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.True(decimal.NewFromInt(500).Equal(s.snapshotTotal()))
	s.Require().Len(s.published, 2)
	s.Equal(events.KindDeleted, s.published[1].Kind)
}

func (s *LifecycleSuite) TestDeleteRecomputesRemainingHistory() {
	_, err := s.service.Create(s.ctx, s.createRequest(300, "2025-04", time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	c, err := s.service.Create(s.ctx, s.createRequest(700, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(s.ctx, c.ID))

	s.True(decimal.NewFromInt(300).Equal(s.snapshotTotal()))
}

func (s *LifecycleSuite) TestHintKeptWhenProfileResolvesNothing() {
	other := s.addInstitution("Caja Militar", catalogmodels.InstitutionTypeOther)
	s.Require().NoError(s.profiles.Save(s.ctx, &profilemodels.UserProfile{ID: s.userID}))

	req := s.createRequest(100, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))
	req.InstitutionID = &other.ID
	c, err := s.service.Create(s.ctx, req)
	s.Require().NoError(err)

	s.Require().NotNil(c.Institution)
	s.Equal("Caja Militar", c.Institution.Name)
	s.Equal(catalogmodels.InstitutionTypeOther, c.Institution.Type)
}

func (s *LifecycleSuite) TestUnknownHintIsRejected() {
	s.Require().NoError(s.profiles.Save(s.ctx, &profilemodels.UserProfile{ID: s.userID}))
	unknown := id.InstitutionID(uuid.New())

	req := s.createRequest(100, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))
	req.InstitutionID = &unknown
	_, err := s.service.Create(s.ctx, req)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *LifecycleSuite) TestCreateWithoutProfileHasNoInstitution() {
	req := s.createRequest(100, "2025-05", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))
	req.UserID = id.UserID(uuid.New())

	c, err := s.service.Create(s.ctx, req)
	s.Require().NoError(err)
	s.Nil(c.Institution)
}

func (s *LifecycleSuite) TestCreateValidation() {
	s.Run("bad period", func() {
		_, err := s.service.Create(s.ctx, s.createRequest(100, "2025/05", fixedNow))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
	s.Run("negative amount", func() {
		_, err := s.service.Create(s.ctx, s.createRequest(-1, "2025-05", fixedNow))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
	s.Run("missing user", func() {
		req := s.createRequest(100, "2025-05", fixedNow)
		req.UserID = id.UserID{}
		_, err := s.service.Create(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
	s.Run("nil request", func() {
		_, err := s.service.Create(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *LifecycleSuite) TestListings() {
	_, err := s.service.Create(s.ctx, s.createRequest(100, "2024-12", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, s.createRequest(200, "2025-01", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.Run("by user newest first", func() {
		all, err := s.service.ListByUser(s.ctx, s.userID)
		s.Require().NoError(err)
		s.Require().Len(all, 2)
		s.Equal(id.Period("2025-01"), all[0].Period)
	})
	s.Run("by year", func() {
		in2024, err := s.service.ListByUserAndYear(s.ctx, s.userID, 2024)
		s.Require().NoError(err)
		s.Len(in2024, 1)
	})
	s.Run("by system", func() {
		private, err := s.service.ListByUserAndSystem(s.ctx, s.userID, catalogmodels.InstitutionTypePrivateManager)
		s.Require().NoError(err)
		s.Len(private, 2)
		public, err := s.service.ListByUserAndSystem(s.ctx, s.userID, catalogmodels.InstitutionTypePublicSystem)
		s.Require().NoError(err)
		s.Empty(public)
	})
	s.Run("unknown system", func() {
		_, err := s.service.ListByUserAndSystem(s.ctx, s.userID, "afp")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// =============================================================================
// Collaborator failures
// =============================================================================

type FailureSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	profiles     *mocks.MockProfileReader
	institutions *mocks.MockInstitutionReader
	resolver     *mocks.MockResolver
	recomputer   *mocks.MockRecomputer
	publisher    *mocks.MockPublisher
	service      *Service
	ctx          context.Context
	userID       id.UserID
}

func TestFailureSuite(t *testing.T) {
	suite.Run(t, new(FailureSuite))
}

func (s *FailureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.profiles = mocks.NewMockProfileReader(s.ctrl)
	s.institutions = mocks.NewMockInstitutionReader(s.ctrl)
	s.resolver = mocks.NewMockResolver(s.ctrl)
	s.recomputer = mocks.NewMockRecomputer(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)
	s.service = New(s.store, s.profiles, s.institutions, s.resolver, s.recomputer, WithPublisher(s.publisher))
	s.ctx = context.Background()
	s.userID = id.UserID(uuid.New())
}

func (s *FailureSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FailureSuite) validRequest() *models.CreateRequest {
	return &models.CreateRequest{
		UserID: s.userID,
		ContributionInput: models.ContributionInput{
			Period:        "2025-05",
			Amount:        decimal.NewNullDecimal(decimal.NewFromInt(10)),
			ContributedOn: fixedNow,
		},
	}
}

func (s *FailureSuite) TestRecomputeAndPublishFailuresAreAbsorbed() {
	s.profiles.EXPECT().FindByID(gomock.Any(), s.userID).Return(nil, sentinel.ErrNotFound)
	s.resolver.EXPECT().Resolve(gomock.Any(), nil).Return(attribution.Resolution{Outcome: attribution.OutcomeNone})
	s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.recomputer.EXPECT().Recompute(gomock.Any(), s.userID).Return(errors.New("lock timeout"))
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	c, err := s.service.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)
	s.NotNil(c)
}

func (s *FailureSuite) TestProfileErrorStillWrites() {
	s.profiles.EXPECT().FindByID(gomock.Any(), s.userID).Return(nil, errors.New("profile service down"))
	s.resolver.EXPECT().Resolve(gomock.Any(), nil).Return(attribution.Resolution{Outcome: attribution.OutcomeNone})
	s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.recomputer.EXPECT().Recompute(gomock.Any(), s.userID).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)
}

func (s *FailureSuite) TestStoreFailureSkipsRecompute() {
	s.profiles.EXPECT().FindByID(gomock.Any(), s.userID).Return(nil, sentinel.ErrNotFound)
	s.resolver.EXPECT().Resolve(gomock.Any(), nil).Return(attribution.Resolution{Outcome: attribution.OutcomeNone})
	s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := s.service.Create(s.ctx, s.validRequest())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *FailureSuite) TestUpdateMissing() {
	missing := id.ContributionID(uuid.New())
	s.store.EXPECT().FindByID(gomock.Any(), missing).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.Update(s.ctx, missing, &s.validRequest().ContributionInput)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *FailureSuite) TestDeleteMissing() {
	missing := id.ContributionID(uuid.New())
	s.store.EXPECT().FindByID(gomock.Any(), missing).Return(nil, sentinel.ErrNotFound)

	err := s.service.Delete(s.ctx, missing)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *FailureSuite) TestDeleteDoesNotAttribute() {
	existing := &models.Contribution{ID: id.ContributionID(uuid.New()), UserID: s.userID, Period: "2025-05"}
	s.store.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)
	s.store.EXPECT().Delete(gomock.Any(), existing.ID).Return(nil)
	s.recomputer.EXPECT().Recompute(gomock.Any(), s.userID).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev events.Event) error {
			s.Equal(events.KindDeleted, ev.Kind)
			return nil
		})

	s.Require().NoError(s.service.Delete(s.ctx, existing.ID))
}
