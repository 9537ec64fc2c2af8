// Package requestcontext carries the request id and the request clock through
// context.Context without depending on net/http.
//
// The HTTP middleware stamps both values once per request so that every
// balance recompute, alert evaluation and history entry made while serving it
// agrees on "now". Code running outside a request falls back to the wall clock.
package requestcontext

import (
	"context"
	"time"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyRequestTime
)

// RequestID returns the id stamped by the request middleware, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(keyRequestID).(string)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// Now is the request clock. Without one it is time.Now().
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(keyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// Today is the calendar date of Now in UTC, at midnight.
func Today(ctx context.Context) time.Time {
	y, m, d := Now(ctx).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WithTime pins the request clock. Tests and batch jobs use it to freeze time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyRequestTime, t)
}
