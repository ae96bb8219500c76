// Package exporters selects OpenTelemetry exporters by name.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Environment variables consulted before dialing an OTLP collector.
const (
	EnvOTLPEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOTLPTracesEndpoint  = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	EnvOTLPMetricsEndpoint = "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"
	EnvJaegerEndpoint      = "OTEL_EXPORTER_JAEGER_ENDPOINT"
)

var (
	// ErrUnknownExporter indicates an exporter name with no constructor.
	ErrUnknownExporter = errors.New("exporters: unknown exporter")

	// ErrEndpointNotConfigured indicates a required endpoint variable is unset.
	ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")
)

// StdoutWriter is where the "stdout" exporters write. Tests may replace it.
var StdoutWriter io.Writer = os.Stdout

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func requireEndpoint(keys ...string) error {
	if firstEnv(keys...) == "" {
		return fmt.Errorf("%w: set %v", ErrEndpointNotConfigured, keys)
	}
	return nil
}

var tracingExporters = map[string]func(context.Context) (sdktrace.SpanExporter, error){
	"stdout": func(context.Context) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithWriter(StdoutWriter))
	},
	"otlp": func(ctx context.Context) (sdktrace.SpanExporter, error) {
		if err := requireEndpoint(EnvOTLPEndpoint, EnvOTLPTracesEndpoint); err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx)
	},
	// Jaeger ingests OTLP natively.
	"jaeger": func(ctx context.Context) (sdktrace.SpanExporter, error) {
		if err := requireEndpoint(EnvJaegerEndpoint); err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx)
	},
	"none": discardTraces,
	"":     discardTraces,
}

func discardTraces(context.Context) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(io.Discard))
}

var metricsReaders = map[string]func(context.Context) (sdkmetric.Reader, error){
	"stdout": func(context.Context) (sdkmetric.Reader, error) {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(StdoutWriter))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil
	},
	"otlp": func(ctx context.Context) (sdkmetric.Reader, error) {
		if err := requireEndpoint(EnvOTLPEndpoint, EnvOTLPMetricsEndpoint); err != nil {
			return nil, err
		}
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil
	},
	"prometheus": func(context.Context) (sdkmetric.Reader, error) {
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exp, nil
	},
	"none": discardMetrics,
	"":     discardMetrics,
}

func discardMetrics(context.Context) (sdkmetric.Reader, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

// NewTracingExporter creates a span exporter by name.
// Supported: stdout, otlp, jaeger, none.
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	build, ok := tracingExporters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
	return build(ctx)
}

// NewMetricsReader creates a metrics reader by name.
// Supported: stdout, otlp, prometheus, none.
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	build, ok := metricsReaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
	return build(ctx)
}
