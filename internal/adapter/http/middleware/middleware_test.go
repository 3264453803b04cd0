package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestLoggingMiddlewareLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	m := NewLoggingMiddleware(zerolog.New(&buf))

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ledgers/u1/usd/sum", nil))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}

	if event["level"] != "error" {
		t.Fatalf("expected 5xx to log at error level, got %v", event["level"])
	}
	if event["status"] != float64(http.StatusServiceUnavailable) {
		t.Fatalf("expected status field, got %v", event["status"])
	}
	if event["path"] != "/api/v1/ledgers/u1/usd/sum" {
		t.Fatalf("expected path field, got %v", event["path"])
	}
}

func TestLoggingMiddlewareAddsLedgerScope(t *testing.T) {
	var buf bytes.Buffer
	m := NewLoggingMiddleware(zerolog.New(&buf))

	r := chi.NewRouter()
	r.Use(m.Wrap)
	r.Get("/api/v1/ledgers/{account}/{currency}/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ledgers/u1/usd/entries/t9", nil))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}

	if event["level"] != "warn" {
		t.Fatalf("expected 4xx to log at warn level, got %v", event["level"])
	}
	if event["account"] != "u1" || event["currency"] != "usd" {
		t.Fatalf("expected ledger scope fields, got %v", event)
	}
	if event["route"] != "/api/v1/ledgers/{account}/{currency}/entries/{id}" {
		t.Fatalf("expected route pattern, got %v", event["route"])
	}
}

func TestRecoveryHandlesPanic(t *testing.T) {
	var buf bytes.Buffer

	handler := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("panic recovered")) {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_rejected_total"})
	rl := NewRateLimiter(0.001, 2, rejected)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 200, 200, 429, got %v", codes)
	}
	if got := testutil.ToFloat64(rejected); got != 1 {
		t.Fatalf("expected 1 rejection recorded, got %v", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected other clients to have their own bucket, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "1.1.1.1, 10.0.0.1"}, "10.0.0.9:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "2.2.2.2"}, "10.0.0.9:1", "2.2.2.2"},
		{"remote addr", nil, "3.3.3.3:4567", "3.3.3.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := clientIP(req); got != tt.want {
				t.Fatalf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanupLimitersDropsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10, nil)
	rl.now = func() time.Time { return now }

	rl.getLimiter("idle")
	now = now.Add(2 * time.Hour)
	rl.getLimiter("active")

	rl.CleanupLimiters(time.Hour)

	if _, ok := rl.limiters["idle"]; ok {
		t.Fatal("expected idle limiter to be removed")
	}
	if _, ok := rl.limiters["active"]; !ok {
		t.Fatal("expected active limiter to be kept")
	}
}
