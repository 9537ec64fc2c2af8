package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newBreaker(clock *fakeClock, opts ...Option) *Breaker {
	return New("kafka", append([]Option{WithClock(clock.now), WithCooldown(time.Minute)}, opts...)...)
}

func TestStartsClosed(t *testing.T) {
	b := New("kafka")
	assert.Equal(t, "kafka", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	b := newBreaker(&fakeClock{t: time.Unix(0, 0)}, WithFailureThreshold(3))

	assert.False(t, b.RecordFailure().Opened)
	assert.False(t, b.RecordFailure().Opened)
	assert.True(t, b.RecordFailure().Opened)
	assert.False(t, b.Allow())

	assert.False(t, b.RecordFailure().Opened, "already open")
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	b := newBreaker(&fakeClock{t: time.Unix(0, 0)}, WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())
}

func TestHalfOpenAfterCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := newBreaker(clock, WithFailureThreshold(1), WithSuccessThreshold(2))

	require.True(t, b.RecordFailure().Opened)
	clock.advance(59 * time.Second)
	assert.Equal(t, StateOpen, b.State())

	clock.advance(time.Second)
	assert.Equal(t, StateHalfOpen, b.State())
	assert.True(t, b.Allow())

	assert.False(t, b.RecordSuccess().Closed)
	assert.True(t, b.RecordSuccess().Closed)
	assert.Equal(t, StateClosed, b.State())
}

func TestFailureWhileHalfOpenReopens(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := newBreaker(clock, WithFailureThreshold(1), WithSuccessThreshold(3))

	b.RecordFailure()
	clock.advance(time.Minute)
	b.RecordSuccess()
	b.RecordSuccess()

	assert.True(t, b.RecordFailure().Opened)
	assert.False(t, b.Allow())
}

func TestReset(t *testing.T) {
	b := newBreaker(&fakeClock{t: time.Unix(0, 0)}, WithFailureThreshold(1))
	b.RecordFailure()
	require.False(t, b.Allow())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
}
