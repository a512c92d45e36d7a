package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a manual-reader meter provider for the test.
func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		_ = provider.Shutdown(context.Background())
	})
	return reader
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestOtelMetrics_RecordsAllInstruments(t *testing.T) {
	reader := setupMetricsTest(t)

	// Construct directly so the test provider is used regardless of the
	// package-level sync.Once state.
	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordParse(ctx, 120*time.Microsecond, 2)
	m.RecordSubstitution(ctx, "sql", 3*time.Millisecond, 2)
	m.RecordCacheAccess(ctx, "parse", true)
	m.RecordCacheAccess(ctx, "parse", false)
	m.RecordConvergence(ctx, 10, false)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	for _, name := range []string{
		"pipevar.parse.count",
		"pipevar.parse.latency_us",
		"pipevar.substitute.count",
		"pipevar.substitute.latency_ms",
		"pipevar.cache.hits",
		"pipevar.cache.misses",
		"pipevar.convergence.passes",
		"pipevar.convergence.non_converged",
	} {
		assert.NotNil(t, findMetric(&rm, name), "metric %s should be recorded", name)
	}
}

func TestNewMetricsRecorder_NeverNil(t *testing.T) {
	setupMetricsTest(t)
	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	// Must be safe to call.
	recorder.RecordParse(context.Background(), time.Microsecond, 0)
	recorder.RecordConvergence(context.Background(), 1, true)
}
