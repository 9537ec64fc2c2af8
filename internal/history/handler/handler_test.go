package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestegg/internal/history/service"
	"nestegg/internal/history/store"
	"nestegg/pkg/testutil"
)

func newHistoryRouter(t *testing.T, now time.Time) http.Handler {
	t.Helper()
	svc := service.New(store.NewInMemory())
	h := New(svc, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	r := chi.NewRouter()
	r.Use(testutil.FixedClock(now))
	h.Register(r)
	return r
}

func TestRecordThenList(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	router := newHistoryRouter(t, now)
	userID := uuid.NewString()

	rec := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/users/"+userID+"/history",
		map[string]string{"kind": "yield", "detail": "checked fund yield", "result": "success"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	listRec := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/users/"+userID+"/history?limit=5", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	resp := testutil.Decode[struct {
		Entries []EntryResponse `json:"entries"`
	}](t, listRec)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "yield", resp.Entries[0].Kind)
	assert.True(t, now.Equal(resp.Entries[0].OccurredAt))
}

func TestRecordRejectsBadInput(t *testing.T) {
	router := newHistoryRouter(t, time.Now())
	base := "/users/" + uuid.NewString() + "/history"

	t.Run("unknown kind", func(t *testing.T) {
		rec := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, base, `{"kind":"horoscope","result":"success"}`))
		testutil.AssertError(t, rec, http.StatusBadRequest, "validation_error")
	})

	t.Run("malformed user id", func(t *testing.T) {
		rec := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/users/nope/history", nil))
		testutil.AssertError(t, rec, http.StatusBadRequest, "invalid_input")
	})

	t.Run("negative limit", func(t *testing.T) {
		rec := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, base+"?limit=-1", nil))
		testutil.AssertError(t, rec, http.StatusBadRequest, "validation_error")
	})
}
