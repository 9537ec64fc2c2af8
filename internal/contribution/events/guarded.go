package events

import (
	"context"
	"fmt"
	"log/slog"

	"nestegg/pkg/platform/circuit"
	"nestegg/pkg/platform/sentinel"
)

// Publisher delivers one event.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// GuardedPublisher fails fast while the broker is unreachable so contribution
// writes stop paying the produce timeout on every request.
type GuardedPublisher struct {
	next    Publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuardedPublisher(next Publisher, breaker *circuit.Breaker, logger *slog.Logger) *GuardedPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GuardedPublisher{next: next, breaker: breaker, logger: logger}
}

func (p *GuardedPublisher) Publish(ctx context.Context, ev Event) error {
	if !p.breaker.Allow() {
		return fmt.Errorf("%s circuit open, dropped event %s: %w", p.breaker.Name(), ev.ID, sentinel.ErrUnavailable)
	}
	if err := p.next.Publish(ctx, ev); err != nil {
		if p.breaker.RecordFailure().Opened {
			p.logger.WarnContext(ctx, "event publisher circuit opened", "breaker", p.breaker.Name())
		}
		return err
	}
	if p.breaker.RecordSuccess().Closed {
		p.logger.InfoContext(ctx, "event publisher circuit closed", "breaker", p.breaker.Name())
	}
	return nil
}

// Ping forwards to the wrapped publisher when it supports health checks.
func (p *GuardedPublisher) Ping(ctx context.Context) error {
	if pinger, ok := p.next.(interface{ Ping(context.Context) error }); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
