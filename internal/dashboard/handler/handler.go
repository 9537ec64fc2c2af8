package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nestegg/internal/dashboard/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

type Service interface {
	Compose(ctx context.Context, userID id.UserID) (*models.Report, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{userID}/dashboard", h.HandleDashboard)
}

// HandleDashboard handles GET /users/{userID}/dashboard. A partial report is
// still a 200; clients read per-section status.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Compose(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "compose dashboard failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if report.Partial {
		h.logger.InfoContext(ctx, "dashboard served partially",
			"request_id", requestID,
			"user_id", userID,
			"failed_sections", report.FailedSections(),
		)
	}
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}
