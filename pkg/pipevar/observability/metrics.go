package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records substitution-engine metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordParse records one template parse with its duration and
	// expression count.
	RecordParse(ctx context.Context, duration time.Duration, exprCount int)

	// RecordSubstitution records one substitution call for a context.
	RecordSubstitution(ctx context.Context, formatContext string, duration time.Duration, exprCount int)

	// RecordCacheAccess records a cache lookup ("parse" or "substitution").
	RecordCacheAccess(ctx context.Context, kind string, hit bool)

	// RecordConvergence records a finished self-resolution loop.
	RecordConvergence(ctx context.Context, passes int, converged bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	parses           metric.Int64Counter
	parseLatency     metric.Float64Histogram
	substitutions    metric.Int64Counter
	subLatency       metric.Float64Histogram
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	convergencePass  metric.Int64Histogram
	nonConvergedRuns metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("pipevar")

	parses, err := meter.Int64Counter("pipevar.parse.count",
		metric.WithDescription("Number of template parses"),
	)
	if err != nil {
		return nil, err
	}

	parseLatency, err := meter.Float64Histogram("pipevar.parse.latency_us",
		metric.WithDescription("Template parse latency in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return nil, err
	}

	substitutions, err := meter.Int64Counter("pipevar.substitute.count",
		metric.WithDescription("Number of substitution calls"),
	)
	if err != nil {
		return nil, err
	}

	subLatency, err := meter.Float64Histogram("pipevar.substitute.latency_ms",
		metric.WithDescription("Substitution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter("pipevar.cache.hits",
		metric.WithDescription("Number of cache hits"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter("pipevar.cache.misses",
		metric.WithDescription("Number of cache misses"),
	)
	if err != nil {
		return nil, err
	}

	convergencePass, err := meter.Int64Histogram("pipevar.convergence.passes",
		metric.WithDescription("Passes used by the self-resolution loop"),
	)
	if err != nil {
		return nil, err
	}

	nonConvergedRuns, err := meter.Int64Counter("pipevar.convergence.non_converged",
		metric.WithDescription("Self-resolution loops that hit the pass bound"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		parses:           parses,
		parseLatency:     parseLatency,
		substitutions:    substitutions,
		subLatency:       subLatency,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
		convergencePass:  convergencePass,
		nonConvergedRuns: nonConvergedRuns,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordParse records one template parse.
func (m *otelMetrics) RecordParse(ctx context.Context, duration time.Duration, exprCount int) {
	attrs := []attribute.KeyValue{
		attribute.Int("expressions", exprCount),
	}
	m.parses.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.parseLatency.Record(ctx, float64(duration.Microseconds()), metric.WithAttributes(attrs...))
}

// RecordSubstitution records one substitution call.
func (m *otelMetrics) RecordSubstitution(ctx context.Context, formatContext string, duration time.Duration, exprCount int) {
	attrs := []attribute.KeyValue{
		attribute.String("context", formatContext),
	}
	m.substitutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.subLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordCacheAccess records a cache lookup.
func (m *otelMetrics) RecordCacheAccess(ctx context.Context, kind string, hit bool) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
	}
	if hit {
		m.cacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		m.cacheMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordConvergence records a finished self-resolution loop.
func (m *otelMetrics) RecordConvergence(ctx context.Context, passes int, converged bool) {
	m.convergencePass.Record(ctx, int64(passes))
	if !converged {
		m.nonConvergedRuns.Add(ctx, 1)
	}
}
