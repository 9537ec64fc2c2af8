package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nestegg/internal/analytics/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

type Service interface {
	Summary(ctx context.Context, userID id.UserID) (*models.Summary, error)
	Comparative(ctx context.Context, userID id.UserID) (*models.Comparative, error)
	Projection(ctx context.Context, userID id.UserID) (*models.Projection, error)
	Statistics(ctx context.Context, userID id.UserID) (*models.Statistics, error)
}

// Handler serves the read-only analytics reports.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{userID}/summary", h.HandleSummary)
	r.Get("/users/{userID}/comparative", h.HandleComparative)
	r.Get("/users/{userID}/projections", h.HandleProjection)
	r.Get("/users/{userID}/statistics", h.HandleStatistics)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "summary", h.service.Summary, func(s *models.Summary) any { return FromSummary(s) })
}

func (h *Handler) HandleComparative(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "comparative", h.service.Comparative, func(c *models.Comparative) any { return FromComparative(c) })
}

func (h *Handler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "projection", h.service.Projection, func(p *models.Projection) any { return FromProjection(p) })
}

func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "statistics", h.service.Statistics, func(st *models.Statistics) any { return FromStatistics(st) })
}

// serve parses {userID}, runs one report and writes its response.
func serve[T any](h *Handler, w http.ResponseWriter, r *http.Request, report string,
	run func(context.Context, id.UserID) (*T, error), render func(*T) any,
) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := run(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "analytics report failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"report", report,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, render(result))
}
