package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catalogmodels "nestegg/internal/catalog/models"
	"nestegg/internal/contribution/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
	"nestegg/pkg/platform/httputil"
	"nestegg/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the contribution operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.Contribution, error)
	Update(ctx context.Context, contributionID id.ContributionID, in *models.ContributionInput) (*models.Contribution, error)
	Delete(ctx context.Context, contributionID id.ContributionID) error
	Get(ctx context.Context, contributionID id.ContributionID) (*models.Contribution, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Contribution, error)
	ListByUserAndYear(ctx context.Context, userID id.UserID, year int) ([]*models.Contribution, error)
	ListByUserAndSystem(ctx context.Context, userID id.UserID, t catalogmodels.InstitutionType) ([]*models.Contribution, error)
}

// Handler wires contribution endpoints to the contribution service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts contribution endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/contributions", h.HandleCreate)
	r.Get("/contributions/{id}", h.HandleGet)
	r.Put("/contributions/{id}", h.HandleUpdate)
	r.Delete("/contributions/{id}", h.HandleDelete)
	r.Get("/users/{userID}/contributions", h.HandleList)
}

// HandleCreate handles POST /contributions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateContributionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Create(ctx, req.ToDomain())
	if err != nil {
		h.logFailure(ctx, "create contribution failed", err, "user_id", req.UserID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromContribution(c))
}

// HandleGet handles GET /contributions/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contributionID, err := id.ParseContributionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Get(ctx, contributionID)
	if err != nil {
		h.logFailure(ctx, "get contribution failed", err, "contribution_id", contributionID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContribution(c))
}

// HandleUpdate handles PUT /contributions/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contributionID, err := id.ParseContributionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateContributionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Update(ctx, contributionID, req.ToDomain())
	if err != nil {
		h.logFailure(ctx, "update contribution failed", err, "contribution_id", contributionID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContribution(c))
}

// HandleDelete handles DELETE /contributions/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contributionID, err := id.ParseContributionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, contributionID); err != nil {
		h.logFailure(ctx, "delete contribution failed", err, "contribution_id", contributionID)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /users/{userID}/contributions, optionally filtered
// by ?year= or ?system=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	var records []*models.Contribution
	switch {
	case query.Get("year") != "" && query.Get("system") != "":
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "filter by year or system, not both"))
		return
	case query.Get("year") != "":
		year, convErr := strconv.Atoi(query.Get("year"))
		if convErr != nil || year < 1900 || year > 9999 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "year must be a four-digit number"))
			return
		}
		records, err = h.service.ListByUserAndYear(ctx, userID, year)
	case query.Get("system") != "":
		records, err = h.service.ListByUserAndSystem(ctx, userID, catalogmodels.InstitutionType(query.Get("system")))
	default:
		records, err = h.service.ListByUser(ctx, userID)
	}
	if err != nil {
		h.logFailure(ctx, "list contributions failed", err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContributions(records))
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if de, ok := dErrors.As(err); ok && httputil.StatusFor(de.Code) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}
