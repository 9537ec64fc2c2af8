package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"nestegg/internal/alerts/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

type Service interface {
	Derive(ctx context.Context, userID id.UserID) (*models.Report, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{userID}/alerts", h.HandleList)
}

type AlertResponse struct {
	Kind     string           `json:"kind"`
	Severity string           `json:"severity"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Count    *int             `json:"count,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Hint     string           `json:"hint"`
}

type ReportResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int             `json:"total"`
}

func FromReport(r *models.Report) *ReportResponse {
	out := &ReportResponse{Alerts: make([]AlertResponse, 0, len(r.Alerts)), Total: r.Total}
	for _, a := range r.Alerts {
		out.Alerts = append(out.Alerts, AlertResponse{
			Kind:     string(a.Kind),
			Severity: string(a.Severity),
			Title:    a.Title,
			Message:  a.Message,
			Count:    a.Count,
			Amount:   a.Amount,
			Hint:     a.Hint,
		})
	}
	return out
}

// HandleList handles GET /users/{userID}/alerts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Derive(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "derive alerts failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}
