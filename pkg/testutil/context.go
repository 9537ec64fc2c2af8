package testutil

import (
	"net/http"
	"time"

	"nestegg/pkg/requestcontext"
)

// FixedClock is middleware that pins the request clock to now, so handlers
// under test derive "today" deterministically.
func FixedClock(now time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, WithClock(r, now))
		})
	}
}

// WithClock returns req with its request clock set to now.
func WithClock(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
