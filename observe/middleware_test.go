package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/funcwrap/wrap"
)

func answer(_ context.Context, _ wrap.Args) (int, error) {
	return 42, nil
}

// newTestMiddleware wires a span recorder and manual metric reader.
func newTestMiddleware(t *testing.T, logger Logger) (*Middleware, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()

	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	return NewMiddleware(NewTracer(tp.Tracer("test")), metrics, logger), spanRecorder, reader
}

func TestInstrument_SuccessPath(t *testing.T) {
	var buf bytes.Buffer
	mw, spans, reader := newTestMiddleware(t, NewLoggerWithWriter("info", &buf))

	decorate, err := Instrument[int](mw, FuncMeta{Name: "answer"})
	if err != nil {
		t.Fatalf("Instrument failed: %v", err)
	}

	result, err := decorate(answer)(context.Background(), wrap.Args{})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result != 42 {
		t.Errorf("expected result 42, got %d", result)
	}

	ended := spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != "func.call.answer" {
		t.Errorf("expected span name 'func.call.answer', got %q", ended[0].Name())
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if findMetric(rm, "func.calls.total") == nil {
		t.Error("func.calls.total metric not found")
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["msg"] != "call completed" || entry["func.name"] != "answer" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestInstrument_ErrorPath(t *testing.T) {
	var buf bytes.Buffer
	mw, spans, reader := newTestMiddleware(t, NewLoggerWithWriter("info", &buf))

	testErr := wrap.Errorf(wrap.KindKey, "lookup", "%q", "last_name")
	failing := func(context.Context, wrap.Args) (int, error) { return 0, testErr }

	decorate, _ := Instrument[int](mw, FuncMeta{Namespace: "demo", Name: "lookup"})
	_, err := decorate(failing)(context.Background(), wrap.Args{})
	if err != testErr {
		t.Errorf("expected error %v unchanged, got %v", testErr, err)
	}

	ended := spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	var funcError bool
	for _, attr := range ended[0].Attributes() {
		if string(attr.Key) == "func.error" {
			funcError = attr.Value.AsBool()
		}
	}
	if !funcError {
		t.Error("expected func.error=true on failed call")
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	errMetric := findMetric(rm, "func.calls.errors")
	if errMetric == nil {
		t.Fatal("func.calls.errors metric not found")
	}
	if sum, ok := errMetric.Data.(metricdata.Sum[int64]); ok && len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 1 {
		t.Errorf("expected errors count 1, got %d", sum.DataPoints[0].Value)
	}

	out := buf.String()
	if !strings.Contains(out, `"error_kind":"key"`) || !strings.Contains(out, `"level":"error"`) {
		t.Errorf("expected error log with kind, got %q", out)
	}
}

func TestInstrument_DoesNotMutateArgs(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)

	args := wrap.Positional("a", 1).With("k", "v")
	snapshot := wrap.Positional("a", 1).With("k", "v")

	var seen wrap.Args
	spy := func(_ context.Context, a wrap.Args) (int, error) {
		seen = a
		return 0, nil
	}

	decorate, _ := Instrument[int](mw, FuncMeta{Name: "spy"})
	if _, err := decorate(spy)(context.Background(), args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(args, snapshot) {
		t.Errorf("args mutated: %v", args)
	}
	if !reflect.DeepEqual(seen, args) {
		t.Errorf("wrapped function saw %v, want %v", seen, args)
	}
}

func TestInstrument_PropagatesSpanContext(t *testing.T) {
	mw, _, _ := newTestMiddleware(t, nil)

	var valid bool
	inner := func(ctx context.Context, _ wrap.Args) (int, error) {
		valid = trace.SpanContextFromContext(ctx).IsValid()
		return 0, nil
	}

	decorate, _ := Instrument[int](mw, FuncMeta{Name: "ctx"})
	_, _ = decorate(inner)(context.Background(), wrap.Args{})

	if !valid {
		t.Error("expected wrapped function to receive a context carrying the span")
	}
}

func TestInstrument_InvalidArguments(t *testing.T) {
	if _, err := Instrument[int](nil, FuncMeta{Name: "x"}); !errors.Is(err, ErrNilMiddleware) {
		t.Errorf("expected ErrNilMiddleware, got %v", err)
	}
	if _, err := Instrument[int](NewMiddleware(nil, nil, nil), FuncMeta{}); !errors.Is(err, ErrMissingFuncName) {
		t.Errorf("expected ErrMissingFuncName, got %v", err)
	}
}
