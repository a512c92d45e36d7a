package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the pipevar tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("pipevar")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartSubstituteSpan starts a span for one substitution call.
	StartSubstituteSpan(ctx context.Context, engineID, formatContext string) (context.Context, trace.Span)

	// StartValidateSpan starts a span for one validation call.
	StartValidateSpan(ctx context.Context, engineID string) (context.Context, trace.Span)

	// StartResolveSelfSpan starts a span for the convergence loop.
	StartResolveSelfSpan(ctx context.Context, engineID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartSubstituteSpan starts a span for one substitution call.
func (m *otelSpanManager) StartSubstituteSpan(ctx context.Context, engineID, formatContext string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pipevar.substitute",
		trace.WithAttributes(
			attribute.String("engine.id", engineID),
			attribute.String("context", formatContext),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartValidateSpan starts a span for one validation call.
func (m *otelSpanManager) StartValidateSpan(ctx context.Context, engineID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pipevar.validate",
		trace.WithAttributes(
			attribute.String("engine.id", engineID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartResolveSelfSpan starts a span for the convergence loop.
func (m *otelSpanManager) StartResolveSelfSpan(ctx context.Context, engineID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pipevar.resolve_self",
		trace.WithAttributes(
			attribute.String("engine.id", engineID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, recording err when non-nil.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
