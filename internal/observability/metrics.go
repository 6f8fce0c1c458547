// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the agent.
type Metrics struct {
	// Discovery metrics
	PostsFetched         *prometheus.CounterVec
	AddressesExtracted   prometheus.Counter
	CandidatesDiscovered prometheus.Counter
	CandidatesSkipped    prometheus.Counter

	// Vetting metrics
	SnapshotsRecorded prometheus.Counter
	ScoresBelowLimit  prometheus.Counter
	ScoresUnknown     prometheus.Counter

	// Trade metrics
	OrdersSubmitted *prometheus.CounterVec
	OrdersFailed    *prometheus.CounterVec
	PositionsOpened prometheus.Counter
	PositionsClosed prometheus.Counter

	// Notification metrics
	AlertsSent   prometheus.Counter
	AlertsFailed prometheus.Counter

	// Cycle metrics
	CyclesTotal        *prometheus.CounterVec
	CycleDuration      prometheus.Histogram
	LastSuccessfulScan prometheus.Gauge

	// External call metrics
	ExternalCallLatency *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "sniper_agent"
	}

	return &Metrics{
		PostsFetched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "posts_fetched_total",
			Help:      "Total number of social posts fetched by account",
		}, []string{"account"}),
		AddressesExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "addresses_extracted_total",
			Help:      "Total number of base58 addresses extracted from posts",
		}),
		CandidatesDiscovered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "candidates_discovered_total",
			Help:      "Total number of new candidates recorded",
		}),
		CandidatesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "candidates_skipped_total",
			Help:      "Total number of already-known candidates skipped",
		}),

		SnapshotsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vetting",
			Name:      "snapshots_recorded_total",
			Help:      "Total number of market snapshots recorded",
		}),
		ScoresBelowLimit: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vetting",
			Name:      "scores_below_limit_total",
			Help:      "Total number of risk scores below the alert threshold",
		}),
		ScoresUnknown: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vetting",
			Name:      "scores_unknown_total",
			Help:      "Total number of risk assessments without a score",
		}),

		OrdersSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trade",
			Name:      "orders_submitted_total",
			Help:      "Total number of confirmed trade orders by side",
		}, []string{"side"}),
		OrdersFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trade",
			Name:      "orders_failed_total",
			Help:      "Total number of failed trade orders by side",
		}, []string{"side"}),
		PositionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trade",
			Name:      "positions_opened_total",
			Help:      "Total number of positions opened",
		}),
		PositionsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trade",
			Name:      "positions_closed_total",
			Help:      "Total number of positions closed",
		}),

		AlertsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "alerts_sent_total",
			Help:      "Total number of alerts delivered",
		}),
		AlertsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "alerts_failed_total",
			Help:      "Total number of alerts that could not be delivered",
		}),

		CyclesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "cycles_total",
			Help:      "Total number of discovery cycles by status",
		}, []string{"status"}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a full discovery cycle",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		LastSuccessfulScan: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "last_successful_scan_timestamp",
			Help:      "Unix timestamp of the last completed cycle",
		}),

		ExternalCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "call_latency_seconds",
			Help:      "Latency of external HTTP and RPC calls by target",
			Buckets:   prometheus.DefBuckets,
		}, []string{"target"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordPostsFetched adds fetched posts for an account.
func RecordPostsFetched(account string, n int) {
	DefaultMetrics.PostsFetched.WithLabelValues(account).Add(float64(n))
}

// RecordCandidateDiscovered increments the discovered counter.
func RecordCandidateDiscovered() {
	DefaultMetrics.CandidatesDiscovered.Inc()
}

// RecordCandidateSkipped increments the skipped counter.
func RecordCandidateSkipped() {
	DefaultMetrics.CandidatesSkipped.Inc()
}

// RecordOrder records a trade order outcome.
func RecordOrder(side string, failed bool) {
	if failed {
		DefaultMetrics.OrdersFailed.WithLabelValues(side).Inc()
		return
	}
	DefaultMetrics.OrdersSubmitted.WithLabelValues(side).Inc()
}

// RecordAlert records a notification delivery attempt.
func RecordAlert(ok bool) {
	if ok {
		DefaultMetrics.AlertsSent.Inc()
		return
	}
	DefaultMetrics.AlertsFailed.Inc()
}

// RecordExternalCall records the latency of one outbound HTTP or RPC
// call against a named target.
func RecordExternalCall(target string, seconds float64) {
	DefaultMetrics.ExternalCallLatency.WithLabelValues(target).Observe(seconds)
}

// RecordCycle records a completed cycle with its duration.
func RecordCycle(status string, seconds float64) {
	DefaultMetrics.CyclesTotal.WithLabelValues(status).Inc()
	DefaultMetrics.CycleDuration.Observe(seconds)
}
