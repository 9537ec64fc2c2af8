package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"nestegg/internal/activity/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

type Service interface {
	Recent(ctx context.Context, userID id.UserID, limit int) ([]models.Event, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{userID}/activity", h.HandleRecent)
}

type EventResponse struct {
	Kind        string           `json:"kind"`
	Description string           `json:"description"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Result      string           `json:"result,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Icon        string           `json:"icon"`
}

type FeedResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

func FromEvents(events []models.Event) *FeedResponse {
	out := &FeedResponse{Events: make([]EventResponse, 0, len(events)), Total: len(events)}
	for _, e := range events {
		out.Events = append(out.Events, EventResponse{
			Kind:        e.Kind,
			Description: e.Description,
			OccurredAt:  e.OccurredAt,
			Result:      e.Result,
			Amount:      e.Amount,
			Icon:        e.Icon,
		})
	}
	return out
}

// HandleRecent handles GET /users/{userID}/activity?limit=.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be an integer"))
			return
		}
	}

	events, err := h.service.Recent(ctx, userID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "load activity failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}
