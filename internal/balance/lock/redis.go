package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/sentinel"
)

const (
	redisKeyPrefix    = "nestegg:recompute-lock:"
	redisRetryBackoff = 25 * time.Millisecond
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a single-instance Redis lock (SET NX PX plus token-checked release).
// TTL bounds how long a crashed holder blocks the user; Wait bounds how long a
// caller polls before giving up.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger *slog.Logger
}

type RedisOption func(*Redis)

func WithLogger(logger *slog.Logger) RedisOption {
	return func(l *Redis) {
		l.logger = logger
	}
}

func NewRedis(client *redis.Client, ttl, wait time.Duration, opts ...RedisOption) *Redis {
	l := &Redis{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Redis) WithUserLock(ctx context.Context, userID id.UserID, fn func(ctx context.Context) error) error {
	key := redisKeyPrefix + userID.String()
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}
	defer l.release(ctx, userID, key, token)

	return fn(ctx)
}

// release runs even if the request context is already cancelled. A failed
// release leaves the user locked out of recomputes until the TTL lapses.
func (l *Redis) release(ctx context.Context, userID id.UserID, key, token string) {
	deleted, err := releaseScript.Run(context.WithoutCancel(ctx), l.client, []string{key}, token).Int()
	switch {
	case err != nil:
		l.logger.WarnContext(ctx, "recompute lock release failed",
			"user_id", userID,
			"ttl", l.ttl,
			"error", err,
		)
	case deleted == 0:
		l.logger.WarnContext(ctx, "recompute lock expired before release",
			"user_id", userID,
			"ttl", l.ttl,
		)
	}
}

func (l *Redis) acquire(ctx context.Context, key, token string) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(redisRetryBackoff)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("acquire recompute lock: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("recompute lock %s held by another writer: %w", key, sentinel.ErrUnavailable)
		case <-ticker.C:
		}
	}
}
