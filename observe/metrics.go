package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records call and cache metrics for decorated functions.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one call with its duration and error status.
	RecordCall(ctx context.Context, meta FuncMeta, duration time.Duration, err error)

	// RecordCacheLookup records one memoization lookup.
	RecordCacheLookup(ctx context.Context, meta FuncMeta, hit bool)
}

type metricsImpl struct {
	callCount    metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	lookupCount  metric.Int64Counter
}

// NewMetrics creates Metrics backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	callCount, err := meter.Int64Counter(
		"func.calls.total",
		metric.WithDescription("Total number of decorated function calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"func.calls.errors",
		metric.WithDescription("Total number of decorated function calls that returned an error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"func.calls.duration_ms",
		metric.WithDescription("Decorated function call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookupCount, err := meter.Int64Counter(
		"func.cache.lookups",
		metric.WithDescription("Memoization cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		callCount:    callCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		lookupCount:  lookupCount,
	}, nil
}

// RecordCall records metrics for one call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta FuncMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)

	m.callCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordCacheLookup records a hit or miss.
func (m *metricsImpl) RecordCacheLookup(ctx context.Context, meta FuncMeta, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	attrs := append(meta.attributes(), attribute.String("cache.result", result))
	m.lookupCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

type noopMetrics struct{}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordCall(context.Context, FuncMeta, time.Duration, error) {}
func (noopMetrics) RecordCacheLookup(context.Context, FuncMeta, bool)         {}
