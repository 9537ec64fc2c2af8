//go:build integration

package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"nestegg/internal/balance/lock"
	"nestegg/internal/balance/service"
	balancestore "nestegg/internal/balance/store"
	contributionmodels "nestegg/internal/contribution/models"
	contributionstore "nestegg/internal/contribution/store"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/tx"
	"nestegg/pkg/requestcontext"
	"nestegg/pkg/testutil/containers"
)

// ConcurrentRecomputeSuite runs many recomputes for one user at once against
// real Postgres and checks the one-snapshot-per-user rule holds under each
// distributed lock.
type ConcurrentRecomputeSuite struct {
	suite.Suite
	postgres      *containers.PostgresContainer
	redis         *containers.RedisContainer
	contributions *contributionstore.PostgresStore
	snapshots     *balancestore.PostgresStore
	ctx           context.Context
	userID        id.UserID
}

func TestConcurrentRecomputeSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ConcurrentRecomputeSuite))
}

func (s *ConcurrentRecomputeSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.redis = mgr.GetRedis(s.T())
	s.contributions = contributionstore.NewPostgres(s.postgres.DB)
	s.snapshots = balancestore.NewPostgres(s.postgres.DB)
}

func (s *ConcurrentRecomputeSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC))
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "contributions", "balance_snapshots"))
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.userID = id.UserID(uuid.New())

	for _, amount := range []string{"1000", "250.25", "49.75"} {
		s.Require().NoError(s.contributions.Create(s.ctx, &contributionmodels.Contribution{
			ID:            id.ContributionID(uuid.New()),
			UserID:        s.userID,
			Period:        "2025-04",
			Amount:        decimal.NewNullDecimal(decimal.RequireFromString(amount)),
			ContributedOn: time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
			Status:        contributionmodels.StatusRegistered,
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		}))
	}
}

func (s *ConcurrentRecomputeSuite) TestAdvisoryLock() {
	s.runConcurrently(lock.NewPostgres(tx.NewRunner(s.postgres.DB, 10*time.Second)))
}

func (s *ConcurrentRecomputeSuite) TestRedisLock() {
	s.runConcurrently(lock.NewRedis(s.redis.Client, 10*time.Second, 10*time.Second))
}

func (s *ConcurrentRecomputeSuite) runConcurrently(locker service.Locker) {
	engine := service.New(s.contributions, s.snapshots, locker)
	const writers = 20

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- engine.Recompute(s.ctx, s.userID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	all, err := s.snapshots.ListByUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(all, 1, "concurrent recomputes must converge on one snapshot")
	s.True(all[0].Total.Equal(decimal.NewFromInt(1300)), "got %s", all[0].Total)
	s.True(all[0].Available.Equal(decimal.NewFromInt(1170)), "got %s", all[0].Available)
	s.Equal(int64(writers), all[0].Version)
}
