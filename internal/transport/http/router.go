// Package httptransport assembles the public HTTP surface: the shared
// middleware chain, operational endpoints, and every bounded context's routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	platformmetrics "nestegg/internal/platform/metrics"
	"nestegg/internal/platform/middleware"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every context handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	RequestTimeout time.Duration
	// Checks are run by /health, keyed by dependency name.
	Checks   map[string]HealthCheck
	Handlers []Registrar
}

func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(logger))

	r.Get("/health", handleHealth(cfg.Checks))
	if cfg.Registry != nil {
		r.Handle("/metrics", platformmetrics.Handler(cfg.Registry))
	}

	r.Group(func(api chi.Router) {
		if cfg.Registry != nil {
			api.Use(platformmetrics.NewHTTP(cfg.Registry).Middleware)
		}
		if cfg.RequestTimeout > 0 {
			api.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		api.Use(middleware.ContentTypeJSON)
		for _, h := range cfg.Handlers {
			h.Register(api)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
