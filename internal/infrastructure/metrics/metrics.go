package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/ledgerkv/internal/domain"
)

const namespace = "ledgerkv"

// Outcome labels.
const (
	OutcomeOK               = "ok"
	OutcomeDuplicate        = "duplicate"
	OutcomeLimitExceeded    = "limit_exceeded"
	OutcomeOverflow         = "overflow"
	OutcomeInvalid          = "invalid"
	OutcomeConflict         = "conflict"
	OutcomeCorrupt          = "corrupt"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeError            = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	StoreErrors       *prometheus.CounterVec

	// API metrics
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_operations_total",
				Help:      "Ledger operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ledger_operation_duration_seconds",
				Help:      "Duration of ledger operations",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Ledger operations that failed because the store was unreachable",
			},
			[]string{"operation"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}
}

// ObserveOperation implements usecase.Metrics.
func (m *Metrics) ObserveOperation(operation string, duration time.Duration, err error) {
	outcome := Outcome(err)

	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if outcome == OutcomeStoreUnavailable {
		m.StoreErrors.WithLabelValues(operation).Inc()
	}
}

// Outcome maps an operation error to a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrDuplicateEntry):
		return OutcomeDuplicate
	case errors.Is(err, domain.ErrLimitExceeded):
		return OutcomeLimitExceeded
	case errors.Is(err, domain.ErrAmountOverflow):
		return OutcomeOverflow
	case errors.Is(err, domain.ErrStoreUnavailable):
		return OutcomeStoreUnavailable
	case errors.Is(err, domain.ErrConcurrentModification):
		return OutcomeConflict
	case errors.Is(err, domain.ErrMalformedEntry),
		errors.Is(err, domain.ErrMalformedAggregate),
		errors.Is(err, domain.ErrInconsistentLedger):
		return OutcomeCorrupt
	case errors.Is(err, domain.ErrInvalidEntry),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrInvalidAccountID),
		errors.Is(err, domain.ErrInvalidCurrency):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
