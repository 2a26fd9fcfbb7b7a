package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tapecalc/internal/calculator"
	"tapecalc/internal/observability"
	"tapecalc/internal/sessions"
	"tapecalc/internal/testutil"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *calculator.Store) {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	store := calculator.NewStore(sessions.Options{})
	reg := prometheus.NewRegistry()
	reg.MustRegister(store.Collector("calculator_sessions_active", "Live calculator sessions."))

	return NewRouter(store, reg), store
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetricsEndpointReportsSessions(t *testing.T) {
	router, store := newTestRouter(t)
	_, _ = store.Create()

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); !strings.Contains(body, "calculator_sessions_active 1") {
		t.Fatalf("expected active sessions gauge in body, got:\n%s", body)
	}
}

func TestNewRouterSessionFlowSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil)
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var created map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &created)
	if _, ok := created["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}
	id, _ := created["id"].(string)

	body := []byte(`{"keys":["2","+","3","="]}`)
	req = httptest.NewRequest(http.MethodPost, "/calculator/sessions/"+id+"/keys", bytes.NewReader(body))
	w = testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	if got := payload["display"]; got != "5" {
		t.Fatalf("expected display 5, got %#v", got)
	}
}

func TestNewRouterUnknownSessionReturnsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/calculator/sessions/"+uuid.New().String(), nil)
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Result().Body, &body)
	if body["error"] != "session not found" {
		t.Fatalf("expected error %q, got %q", "session not found", body["error"])
	}
}
