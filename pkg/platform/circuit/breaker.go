// Package circuit implements a consecutive-failure circuit breaker for calls
// to optional downstream dependencies.
package circuit

import (
	"sync"
	"time"
)

// State of a breaker.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Change reports a transition caused by a Record call.
type Change struct {
	Opened bool
	Closed bool
}

// Breaker opens after FailureThreshold consecutive failures and rejects calls
// for Cooldown. After the cooldown it lets trial calls through (half-open) and
// closes again after SuccessThreshold consecutive successes; any failure while
// half-open reopens it.
type Breaker struct {
	name             string
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	now              func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openUntil time.Time
}

type Option func(*Breaker)

func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		b.now = now
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		successThreshold: 1,
		cooldown:         30 * time.Second,
		now:              time.Now,
		state:            StateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

// State returns the current state, promoting an expired open breaker to half-open.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.promote()
	return b.state
}

// Allow reports whether a call may be attempted.
func (b *Breaker) Allow() bool {
	return b.State() != StateOpen
}

func (b *Breaker) RecordSuccess() Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.promote()

	b.failures = 0
	if b.state != StateHalfOpen {
		return Change{}
	}
	b.successes++
	if b.successes < b.successThreshold {
		return Change{}
	}
	b.state = StateClosed
	b.successes = 0
	return Change{Closed: true}
}

func (b *Breaker) RecordFailure() Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.promote()

	b.successes = 0
	switch b.state {
	case StateOpen:
		return Change{}
	case StateHalfOpen:
		b.trip()
		return Change{Opened: true}
	}
	b.failures++
	if b.failures < b.failureThreshold {
		return Change{}
	}
	b.trip()
	return Change{Opened: true}
}

// Reset closes the breaker and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.failures = 0
	b.openUntil = b.now().Add(b.cooldown)
}

// promote must be called with mu held.
func (b *Breaker) promote() {
	if b.state == StateOpen && !b.now().Before(b.openUntil) {
		b.state = StateHalfOpen
		b.successes = 0
	}
}
