//go:build integration

package lock_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"nestegg/internal/balance/lock"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
	"nestegg/pkg/testutil/containers"
)

type RedisLockSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	ctx   context.Context
}

func TestRedisLockSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLockSuite))
}

func (s *RedisLockSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisLockSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisLockSuite) TestMutualExclusion() {
	l := lock.NewRedis(s.redis.Client, 5*time.Second, 5*time.Second)
	userID := id.UserID(uuid.New())

	var inside, peak atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithUserLock(s.ctx, userID, func(context.Context) error {
				n := inside.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inside.Add(-1)
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal(int32(1), peak.Load())
	held, err := s.redis.Exists(s.ctx, "nestegg:recompute-lock:"+userID.String())
	s.Require().NoError(err)
	s.False(held, "lock key must be released")
}

func (s *RedisLockSuite) TestWaitTimeout() {
	userID := id.UserID(uuid.New())
	holder := lock.NewRedis(s.redis.Client, 5*time.Second, time.Second)
	waiter := lock.NewRedis(s.redis.Client, 5*time.Second, 100*time.Millisecond)

	entered := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = holder.WithUserLock(s.ctx, userID, func(context.Context) error {
			close(entered)
			<-done
			return nil
		})
	}()
	<-entered

	err := waiter.WithUserLock(s.ctx, userID, func(context.Context) error {
		s.Fail("must not enter while lock is held")
		return nil
	})
	close(done)
	s.True(errors.Is(err, sentinel.ErrUnavailable), "got %v", err)
}

func (s *RedisLockSuite) TestUsersDoNotBlockEachOther() {
	l := lock.NewRedis(s.redis.Client, 5*time.Second, 100*time.Millisecond)
	first := id.UserID(uuid.New())
	second := id.UserID(uuid.New())

	err := l.WithUserLock(s.ctx, first, func(ctx context.Context) error {
		return l.WithUserLock(ctx, second, func(context.Context) error { return nil })
	})
	s.NoError(err)
}

// failScripts rejects EVAL and EVALSHA so the release script never reaches Redis.
type failScripts struct{}

func (failScripts) DialHook(next redis.DialHook) redis.DialHook { return next }

func (failScripts) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if strings.HasPrefix(cmd.Name(), "eval") {
			err := errors.New("script rejected")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (failScripts) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (s *RedisLockSuite) TestFailedReleaseIsLogged() {
	client := redis.NewClient(s.redis.Client.Options())
	defer client.Close()
	client.AddHook(failScripts{})

	var logs bytes.Buffer
	l := lock.NewRedis(client, 300*time.Millisecond, 100*time.Millisecond,
		lock.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	userID := id.UserID(uuid.New())

	s.Require().NoError(l.WithUserLock(s.ctx, userID, func(context.Context) error { return nil }))

	s.Contains(logs.String(), "recompute lock release failed")
	s.Contains(logs.String(), userID.String())
	held, err := s.redis.Exists(s.ctx, "nestegg:recompute-lock:"+userID.String())
	s.Require().NoError(err)
	s.True(held, "key stays until the TTL lapses")

	s.Eventually(func() bool {
		held, err := s.redis.Exists(s.ctx, "nestegg:recompute-lock:"+userID.String())
		return err == nil && !held
	}, 2*time.Second, 50*time.Millisecond)
}

func (s *RedisLockSuite) TestExpiredLeaseIsLogged() {
	var logs bytes.Buffer
	l := lock.NewRedis(s.redis.Client, 100*time.Millisecond, 100*time.Millisecond,
		lock.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	err := l.WithUserLock(s.ctx, id.UserID(uuid.New()), func(context.Context) error {
		time.Sleep(250 * time.Millisecond)
		return nil
	})

	s.Require().NoError(err)
	s.Contains(logs.String(), "recompute lock expired before release")
}
