package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/ledgerkv/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		pattern    string
		statusCode int
	}{
		{
			name:       "labels ledger routes by pattern",
			method:     http.MethodGet,
			path:       "/api/v1/ledgers/u1/usd/sum",
			pattern:    "/api/v1/ledgers/{account}/{currency}/sum",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "keeps static routes",
			method:     http.MethodPost,
			path:       "/health",
			pattern:    "/health",
			statusCode: http.StatusCreated,
		},
		{
			name:       "collapses unknown routes",
			method:     http.MethodGet,
			path:       "/nope/123",
			pattern:    unmatchedRoute,
			statusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())

			handlerCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			}

			r := chi.NewRouter()
			r.Use(Metrics(m))
			r.Get("/api/v1/ledgers/{account}/{currency}/sum", next)
			r.Post("/health", next)
			r.NotFound(next)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(m.HTTPRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			counter := m.HTTPRequests.WithLabelValues(tc.method, tc.pattern, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestRoutePatternWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledgers/u1/usd/sum", nil)

	if got := routePattern(req); got != unmatchedRoute {
		t.Fatalf("routePattern() = %q, expected %q", got, unmatchedRoute)
	}
}
