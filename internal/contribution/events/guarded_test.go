package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestegg/pkg/platform/circuit"
	"nestegg/pkg/platform/sentinel"
)

type flakyPublisher struct {
	err   error
	calls int
}

func (f *flakyPublisher) Publish(context.Context, Event) error {
	f.calls++
	return f.err
}

func TestGuardedPublisherOpensAndFailsFast(t *testing.T) {
	ctx := context.Background()
	down := &flakyPublisher{err: errors.New("broker unreachable")}
	p := NewGuardedPublisher(down, circuit.New("kafka", circuit.WithFailureThreshold(2)), nil)

	require.Error(t, p.Publish(ctx, Event{ID: "1"}))
	require.Error(t, p.Publish(ctx, Event{ID: "2"}))
	require.Equal(t, 2, down.calls)

	err := p.Publish(ctx, Event{ID: "3"})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Equal(t, 2, down.calls, "open circuit must not reach the broker")
}

func TestGuardedPublisherPassesThrough(t *testing.T) {
	up := &flakyPublisher{}
	p := NewGuardedPublisher(up, circuit.New("kafka"), nil)

	require.NoError(t, p.Publish(context.Background(), Event{ID: "1"}))
	assert.Equal(t, 1, up.calls)
	assert.NoError(t, p.Ping(context.Background()))
}
