// Package requesttime provides middleware and utilities for request-scoped time.
// Every read of "now" within one request (snapshot cutoff dates, alert windows,
// history timestamps) sees the same instant.
package requesttime

import (
	"net/http"
	"time"

	"nestegg/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context for consistent time references throughout the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		ctx := requestcontext.WithTime(r.Context(), now)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
