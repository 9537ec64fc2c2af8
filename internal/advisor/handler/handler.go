package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"nestegg/internal/advisor/models"
	id "nestegg/pkg/domain"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

type Service interface {
	Context(ctx context.Context, userID id.UserID) (*models.FinancialContext, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{userID}/financial-context", h.HandleContext)
}

type ContextResponse struct {
	Regime            string          `json:"regime"`
	FundManager       string          `json:"fund_manager"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	ContributionCount int             `json:"contribution_count"`
	ActivePolicies    int             `json:"active_policies"`
	Text              string          `json:"text"`
}

// HandleContext handles GET /users/{userID}/financial-context.
func (h *Handler) HandleContext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	fc, err := h.service.Context(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "build financial context failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ContextResponse{
		Regime:            string(fc.Regime),
		FundManager:       fc.FundManager,
		TotalBalance:      fc.TotalBalance,
		ContributionCount: fc.ContributionCount,
		ActivePolicies:    fc.ActivePolicies,
		Text:              fc.Render(),
	})
}
