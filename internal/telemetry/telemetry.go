// Package telemetry provides OpenTelemetry instrumentation for the
// formsight service. It exports Prometheus metrics and a tracer.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "formsight"

// Metrics holds all formsight Prometheus metrics.
type Metrics struct {
	// Classification metrics
	ClassificationsTotal   *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	SignalScore            *prometheus.HistogramVec
	SignalFailures         *prometheus.CounterVec
	BatchSize              prometheus.Histogram

	// Snapshot collector metrics
	SnapshotCaptures        *prometheus.CounterVec
	SnapshotCaptureDuration prometheus.Histogram

	// Result store metrics
	StoreOperations *prometheus.CounterVec

	// History metrics
	HistoryWriteFailures prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initClassificationMetrics(m)
	initSnapshotMetrics(m)
	initStoreMetrics(m)
	return m
}

func initClassificationMetrics(m *Metrics) {
	m.ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formsight_classifications_total",
		Help: "Total page classifications by verdict (positive, negative)",
	}, []string{"verdict"})

	m.ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "formsight_classification_duration_seconds",
		Help:    "Time to classify a single page snapshot",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.SignalScore = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "formsight_signal_score",
		Help:    "Signal score distribution by signal (url, content, form)",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	}, []string{"signal"})

	m.SignalFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formsight_signal_failures_total",
		Help: "Analyzer failures degraded to a zero signal, by signal",
	}, []string{"signal"})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "formsight_batch_size",
		Help:    "Number of snapshots per batch classification",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})
}

func initSnapshotMetrics(m *Metrics) {
	m.SnapshotCaptures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formsight_snapshot_captures_total",
		Help: "Page snapshot captures by outcome (ok, error)",
	}, []string{"outcome"})

	m.SnapshotCaptureDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "formsight_snapshot_capture_duration_seconds",
		Help:    "Time to capture a page snapshot via the browser",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
}

func initStoreMetrics(m *Metrics) {
	m.StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formsight_store_operations_total",
		Help: "Result store operations by op (put, get, delete) and outcome",
	}, []string{"op", "outcome"})

	m.HistoryWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "formsight_history_write_failures_total",
		Help: "Classification history inserts that failed",
	})
}
