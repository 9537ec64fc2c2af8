package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

func TestMemorySerializesPerUser(t *testing.T) {
	l := NewMemory()
	userID := id.UserID(uuid.New())

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithUserLock(context.Background(), userID, func(context.Context) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Empty(t, l.slots, "slots are released once idle")
}

func TestMemoryDifferentUsersDoNotBlock(t *testing.T) {
	l := NewMemory()
	a, b := id.UserID(uuid.New()), id.UserID(uuid.New())

	err := l.WithUserLock(context.Background(), a, func(ctx context.Context) error {
		return l.WithUserLock(ctx, b, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
}

func TestMemoryHonorsContextWhileWaiting(t *testing.T) {
	l := NewMemory()
	userID := id.UserID(uuid.New())

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = l.WithUserLock(context.Background(), userID, func(context.Context) error {
			close(held)
			<-done
			return nil
		})
	}()
	<-held
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.WithUserLock(ctx, userID, func(context.Context) error {
		t.Fatal("fn must not run without the lock")
		return nil
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}
