package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activitymodels "nestegg/internal/activity/models"
	alertsmodels "nestegg/internal/alerts/models"
	analyticsmodels "nestegg/internal/analytics/models"
	coveragemodels "nestegg/internal/coverage/models"
	"nestegg/internal/dashboard/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

type stubService struct {
	report *models.Report
	err    error
}

func (s stubService) Compose(context.Context, id.UserID) (*models.Report, error) {
	return s.report, s.err
}

func serve(t *testing.T, svc Service, userID string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+userID+"/dashboard", nil))
	return rec
}

func TestPartialDashboard(t *testing.T) {
	userID := id.UserID(uuid.New())
	report := &models.Report{
		UserID:       userID,
		GeneratedAt:  time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC),
		Profile:      models.OK(models.ProfileSummary{FullName: "Luis Paredes"}),
		Balance:      models.Failed[models.BalanceFigures]("section unavailable"),
		Coverage:     models.OK(coveragemodels.Summary{TotalPolicies: 1, ActivePolicies: 1, MonthlyPremiumTotal: decimal.NewFromInt(40), InsuredTotal: decimal.NewFromInt(10000)}),
		Alerts:       models.OK(alertsmodels.NewReport(nil)),
		Activity:     models.OK([]activitymodels.Event{}),
		YearlyTotals: models.OK([]analyticsmodels.YearTotal{{Year: 2025, Total: decimal.NewFromInt(300)}}),
		Regime:       models.OK(models.RegimeInfo{FundManager: models.NotAffiliated}),
		Partial:      true,
	}

	rec := serve(t, stubService{report: report}, userID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["partial"])

	balance := body["balance"].(map[string]any)
	assert.Equal(t, "error", balance["status"])
	assert.Equal(t, "section unavailable", balance["error"])
	assert.NotContains(t, balance, "data")

	coverage := body["coverage"].(map[string]any)
	assert.Equal(t, "ok", coverage["status"])
	assert.Equal(t, "40", coverage["data"].(map[string]any)["monthly_premium_total"])

	regime := body["regime"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "Not affiliated", regime["fund_manager"])

	totals := body["yearly_totals"].(map[string]any)["data"].([]any)
	require.Len(t, totals, 1)
}

func TestDashboardUnknownUser(t *testing.T) {
	rec := serve(t, stubService{err: dErrors.New(dErrors.CodeNotFound, "user not found")}, uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
