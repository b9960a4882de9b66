package telemetry_test

import (
	"sync"
	"testing"

	"github.com/jonesrussell/formsight/internal/telemetry"
)

// providerOnce ensures only one Provider per test run: promauto registers
// into the global Prometheus registry, and a second registration panics.
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestMetricsRecordWithoutPanic(t *testing.T) {
	m := getTestProvider(t).Metrics

	m.ClassificationsTotal.WithLabelValues("positive").Inc()
	m.ClassificationsTotal.WithLabelValues("negative").Inc()
	m.ClassificationDuration.Observe(0.002)
	m.SignalScore.WithLabelValues("url").Observe(30)
	m.SignalScore.WithLabelValues("content").Observe(75)
	m.SignalScore.WithLabelValues("form").Observe(60)
	m.SignalFailures.WithLabelValues("content").Inc()
	m.SnapshotCaptures.WithLabelValues("ok").Inc()
	m.SnapshotCaptureDuration.Observe(1.2)
	m.StoreOperations.WithLabelValues("put", "ok").Inc()
	m.HistoryWriteFailures.Inc()
}

func TestHandler(t *testing.T) {
	if getTestProvider(t).Handler() == nil {
		t.Error("expected non-nil metrics handler")
	}
}
