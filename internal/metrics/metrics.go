package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder abstracts metric recording so disabled metrics cost nothing.
type Recorder interface {
	// RecordTokenAcquisition counts a grant attempt by grant type.
	RecordTokenAcquisition(grantType string, success bool)

	// RecordSearchStrategy counts one search ladder strategy attempt.
	RecordSearchStrategy(strategy string, success bool)

	// RecordRecordStrategy counts one detail ladder strategy attempt.
	RecordRecordStrategy(strategy string, success bool)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	TokenAcquisitionsTotal *prometheus.CounterVec
	SearchStrategyTotal    *prometheus.CounterVec
	RecordStrategyTotal    *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag.
// If enabled=false, returns NoopMetrics (zero overhead).
// Uses sync.Once so Prometheus metrics are only registered once.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		TokenAcquisitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osdu_token_acquisitions_total",
				Help: "Total number of token grant attempts",
			},
			[]string{"grant", "result"},
		),
		SearchStrategyTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osdu_search_strategy_attempts_total",
				Help: "Total number of search fallback strategy attempts",
			},
			[]string{"strategy", "result"},
		),
		RecordStrategyTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osdu_record_strategy_attempts_total",
				Help: "Total number of record retrieval strategy attempts",
			},
			[]string{"strategy", "result"},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of in-flight HTTP requests",
			},
		),
	}
}

func result(success bool) string {
	if success {
		return resultSuccess
	}
	return resultFailure
}

// RecordTokenAcquisition counts a grant attempt by grant type.
func (m *Metrics) RecordTokenAcquisition(grantType string, success bool) {
	m.TokenAcquisitionsTotal.WithLabelValues(grantType, result(success)).Inc()
}

// RecordSearchStrategy counts one search ladder strategy attempt.
func (m *Metrics) RecordSearchStrategy(strategy string, success bool) {
	m.SearchStrategyTotal.WithLabelValues(strategy, result(success)).Inc()
}

// RecordRecordStrategy counts one detail ladder strategy attempt.
func (m *Metrics) RecordRecordStrategy(strategy string, success bool) {
	m.RecordStrategyTotal.WithLabelValues(strategy, result(success)).Inc()
}
