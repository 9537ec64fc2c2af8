// Package lock serializes balance recomputes per user. Each implementation
// runs fn while holding an exclusive lock on one user and releases it on return.
package lock

import (
	"context"
	"sync"

	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

// Memory is an in-process keyed lock. It only serializes callers within one
// process; multi-instance deployments use Redis or Postgres.
type Memory struct {
	mu    sync.Mutex
	slots map[id.UserID]*slot
}

type slot struct {
	sem  chan struct{}
	refs int
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[id.UserID]*slot)}
}

func (m *Memory) WithUserLock(ctx context.Context, userID id.UserID, fn func(ctx context.Context) error) error {
	sl := m.acquireSlot(userID)
	defer m.releaseSlot(userID, sl)

	select {
	case sl.sem <- struct{}{}:
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "timed out waiting for recompute lock")
	}
	defer func() { <-sl.sem }()

	return fn(ctx)
}

func (m *Memory) acquireSlot(userID id.UserID) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl, ok := m.slots[userID]
	if !ok {
		sl = &slot{sem: make(chan struct{}, 1)}
		m.slots[userID] = sl
	}
	sl.refs++
	return sl
}

func (m *Memory) releaseSlot(userID id.UserID, sl *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl.refs--
	if sl.refs == 0 {
		delete(m.slots, userID)
	}
}
