package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/funcwrap/wrap"
)

// Middleware holds the telemetry components used by Instrument.
//
// Contract:
//   - Concurrency: decorators built from a Middleware are safe for concurrent use.
//   - Errors: errors from the wrapped function are recorded and propagated unchanged.
//   - Ownership: arguments and results are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware. Nil components are replaced by
// no-op implementations.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Metrics returns the middleware's metrics recorder.
func (m *Middleware) Metrics() Metrics { return m.metrics }

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger { return m.logger }

// Instrument returns a decorator that traces, measures and logs every call,
// successful or not.
func Instrument[T any](m *Middleware, meta FuncMeta) (wrap.Decorator[T], error) {
	if m == nil {
		return nil, ErrNilMiddleware
	}
	if meta.Name == "" {
		return nil, ErrMissingFuncName
	}

	logger := m.logger.WithFunc(meta)

	return func(fn wrap.Func[T]) wrap.Func[T] {
		return func(ctx context.Context, args wrap.Args) (T, error) {
			ctx, span := m.tracer.StartSpan(ctx, meta)
			start := time.Now()

			result, err := fn(ctx, args)

			duration := time.Since(start)
			m.tracer.EndSpan(span, err)
			m.metrics.RecordCall(ctx, meta, duration, err)

			fields := []Field{
				{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			}
			if err != nil {
				fields = append(fields,
					Field{Key: "error", Value: err.Error()},
					Field{Key: "error_kind", Value: wrap.KindOf(err).String()},
				)
				logger.Error(ctx, "call failed", fields...)
			} else {
				logger.Info(ctx, "call completed", fields...)
			}

			return result, err
		}
	}, nil
}
