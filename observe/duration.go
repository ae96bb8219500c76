package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/funcwrap/wrap"
)

// Duration returns a decorator that reports how long each call took.
//
// The wrapped function runs exactly once per call. After it returns without
// error, an "elapsed time" entry is written to logger with elapsed_s and
// duration_ms fields. When it fails, the error is returned unchanged and
// nothing is reported. The result is passed through.
//
// Reports are written at info level, so a logger configured for warn or
// error drops them. A nil logger discards reports.
func Duration[T any](logger Logger, meta FuncMeta) wrap.Decorator[T] {
	if logger == nil {
		logger = NopLogger()
	}
	logger = logger.WithFunc(meta)

	return func(fn wrap.Func[T]) wrap.Func[T] {
		return func(ctx context.Context, args wrap.Args) (T, error) {
			start := time.Now()
			result, err := fn(ctx, args)
			if err != nil {
				return result, err
			}

			elapsed := time.Since(start)
			logger.Info(ctx, "elapsed time",
				Field{Key: "elapsed_s", Value: elapsed.Seconds()},
				Field{Key: "duration_ms", Value: float64(elapsed.Milliseconds())},
			)
			return result, nil
		}
	}
}
