package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// FuncMeta describes a decorated function for telemetry purposes.
type FuncMeta struct {
	Namespace string   // Package or component the function belongs to (optional)
	Name      string   // Function name (required)
	Version   string   // Function version (optional)
	Tags      []string // Free-form tags (optional)
}

// SpanName returns the deterministic span name for this function.
// Format: func.call.<namespace>.<name> or func.call.<name>
func (m FuncMeta) SpanName() string {
	return "func.call." + m.ID()
}

// ID returns the fully qualified function identifier.
func (m FuncMeta) ID() string {
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// attributes returns the common attribute set for spans and metrics.
func (m FuncMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("func.id", m.ID()),
		attribute.String("func.name", m.Name),
	}
	if m.Namespace != "" {
		attrs = append(attrs, attribute.String("func.namespace", m.Namespace))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with per-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for one call of the function.
	StartSpan(ctx context.Context, meta FuncMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer over the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a span with the function metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta FuncMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("func.error", false))
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("func.version", meta.Version))
	}
	if len(meta.Tags) > 0 {
		attrs = append(attrs, attribute.StringSlice("func.tags", meta.Tags))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("func.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta FuncMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
