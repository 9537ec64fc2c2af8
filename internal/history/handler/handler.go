package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"nestegg/internal/history/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

type Service interface {
	Record(ctx context.Context, userID id.UserID, req *models.RecordRequest) (*models.Entry, error)
	List(ctx context.Context, userID id.UserID, limit int) ([]*models.Entry, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/users/{userID}/history", h.HandleRecord)
	r.Get("/users/{userID}/history", h.HandleList)
}

// RecordRequest is the body of POST /users/{userID}/history.
type RecordRequest struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
	Result string `json:"result"`
}

func (r *RecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Kind) > 32 || len(r.Result) > 32 {
		return dErrors.New(dErrors.CodeValidation, "kind and result must be 32 characters or less")
	}
	return nil
}

type EntryResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Detail     string    `json:"detail"`
	Result     string    `json:"result"`
	OccurredAt time.Time `json:"occurred_at"`
}

func fromEntry(e *models.Entry) *EntryResponse {
	return &EntryResponse{
		ID:         e.ID.String(),
		Kind:       string(e.Kind),
		Detail:     e.Detail,
		Result:     string(e.Result),
		OccurredAt: e.OccurredAt,
	}
}

// HandleRecord handles POST /users/{userID}/history.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RecordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	e, err := h.service.Record(ctx, userID, &models.RecordRequest{
		Kind:   models.Kind(req.Kind),
		Detail: req.Detail,
		Result: models.Result(req.Result),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record history failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromEntry(e))
}

// HandleList handles GET /users/{userID}/history?limit=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a non-negative integer"))
			return
		}
	}

	entries, err := h.service.List(ctx, userID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list history failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	out := make([]*EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, fromEntry(e))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": out})
}
