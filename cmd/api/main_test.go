package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenseboard/internal/engine"
	"expenseboard/internal/policy"
	"expenseboard/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "expenses.json"))
	require.NoError(t, err)
	eng = engine.New(st, policy.DefaultLimits())
	return setupRouter()
}

func doJSON(r *gin.Engine, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcessEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/process", `{"employee":"Alice","category":"Travel","amount":500}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rec store.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "APPROVED", rec.Decision)
	assert.Equal(t, "The expense was APPROVED because Within auto-approval threshold.", rec.Explanation)
}

func TestProcessEndpointRejectsBadInput(t *testing.T) {
	r := newTestRouter(t)
	for _, body := range []string{
		`{"employee":"","category":"Travel","amount":500}`,
		`{"employee":"Alice","category":"Travel","amount":-5}`,
		`{"employee":"Alice","category":"Travel"}`,
		`not json`,
	} {
		w := doJSON(r, http.MethodPost, "/process", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestSaveWithoutPendingDecision(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/save", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProcessSaveStatsFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/process", `{"employee":"Bob","category":"Food","amount":5000}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/save", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Slot consumed: a second save has nothing to persist.
	w = doJSON(r, http.MethodPost, "/save", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodGet, "/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats engine.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, engine.Stats{Pending: 1}, stats)
}

func TestDashboardData(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/dashboard/data", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Result     *store.Record `json:"result"`
		Stats      engine.Stats  `json:"stats"`
		Categories []string      `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Nil(t, payload.Result)
	assert.Len(t, payload.Categories, 6)
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := newTestRouter(t)
	t.Setenv("API_KEY", "secret")

	w := doJSON(r, http.MethodGet, "/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/stats", "", map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Dashboard routes stay open.
	w = doJSON(r, http.MethodGet, "/dashboard/data", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLimitsFromEnv(t *testing.T) {
	t.Setenv("AUTO_LIMIT", "2000")
	t.Setenv("MANAGER_LIMIT", "")
	l := limitsFromEnv()
	assert.Equal(t, 2000.0, l.AutoLimit)
	assert.Equal(t, 15000.0, l.ManagerLimit)
	assert.Equal(t, 200000.0, l.MonthlyLimit)
}
