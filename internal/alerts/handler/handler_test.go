package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestegg/internal/alerts/models"
	id "nestegg/pkg/domain"
	dErrors "nestegg/pkg/domain-errors"
)

type stubService struct {
	report *models.Report
	err    error
}

func (s stubService) Derive(context.Context, id.UserID) (*models.Report, error) {
	return s.report, s.err
}

func serve(t *testing.T, svc Service, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleList(t *testing.T) {
	two := 2
	amount := decimal.RequireFromString("199.90")
	report := models.NewReport([]models.Alert{
		{Kind: models.KindPendingPayments, Severity: models.SeverityDanger, Count: &two, Amount: &amount, Hint: models.HintCreditCard},
		{Kind: models.KindStaleContributions, Severity: models.SeverityWarning, Hint: models.HintAlertCircle},
	})

	rec := serve(t, stubService{report: &report}, "/users/"+uuid.NewString()+"/alerts")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body["total"])
	alerts := body["alerts"].([]any)
	require.Len(t, alerts, 2)
	first := alerts[0].(map[string]any)
	assert.Equal(t, "pending_payments", first["kind"])
	assert.Equal(t, "199.9", first["amount"])
	second := alerts[1].(map[string]any)
	assert.NotContains(t, second, "count")
	assert.NotContains(t, second, "amount")
}

func TestHandleListEmptyReport(t *testing.T) {
	report := models.NewReport(nil)
	rec := serve(t, stubService{report: &report}, "/users/"+uuid.NewString()+"/alerts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"alerts":[],"total":0}`, rec.Body.String())
}

func TestHandleListErrors(t *testing.T) {
	rec := serve(t, stubService{}, "/users/not-a-uuid/alerts")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	failing := stubService{err: dErrors.Wrap(errors.New("db down"), dErrors.CodeInternal, "failed to derive alerts")}
	rec = serve(t, failing, "/users/"+uuid.NewString()+"/alerts")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

}
