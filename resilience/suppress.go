package resilience

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jonwraymond/funcwrap/observe"
	"github.com/jonwraymond/funcwrap/wrap"
)

// Reporter observes each suppressed failure.
type Reporter func(ctx context.Context, kind wrap.Kind, err error)

// Suppressor decides which failures are swallowed.
//
// Contract:
//   - Concurrency: safe for concurrent use; the kind set is fixed at construction.
//   - Errors: only errors whose wrap.KindOf is designated are suppressed.
type Suppressor struct {
	kinds    mapset.Set[wrap.Kind]
	logger   observe.Logger
	meta     observe.FuncMeta
	reporter Reporter
}

// SuppressorOption configures a Suppressor.
type SuppressorOption func(*Suppressor)

// WithLogger sets the logger suppressed failures are reported to.
func WithLogger(l observe.Logger) SuppressorOption {
	return func(s *Suppressor) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFuncMeta attaches function metadata to reports.
func WithFuncMeta(meta observe.FuncMeta) SuppressorOption {
	return func(s *Suppressor) {
		s.meta = meta
	}
}

// WithReporter registers a callback invoked for every suppressed failure,
// after the log report.
func WithReporter(r Reporter) SuppressorOption {
	return func(s *Suppressor) {
		s.reporter = r
	}
}

// NewSuppressor creates a Suppressor for the given kinds. Designating
// wrap.KindUnknown suppresses errors that carry no kind at all.
func NewSuppressor(kinds []wrap.Kind, opts ...SuppressorOption) (*Suppressor, error) {
	if len(kinds) == 0 {
		return nil, ErrNoKinds
	}

	s := &Suppressor{
		kinds:  mapset.NewThreadUnsafeSet(kinds...),
		logger: observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.meta.Name != "" {
		s.logger = s.logger.WithFunc(s.meta)
	}
	return s, nil
}

// Kinds returns the designated kinds in ascending order.
func (s *Suppressor) Kinds() []wrap.Kind {
	out := make([]wrap.Kind, 0, s.kinds.Cardinality())
	for k := wrap.KindUnknown; k <= wrap.KindValidation; k++ {
		if s.kinds.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// Suppresses reports whether err would be swallowed.
func (s *Suppressor) Suppresses(err error) bool {
	return err != nil && s.kinds.Contains(wrap.KindOf(err))
}

// Report formats the human-readable report for a suppressed error,
// e.g. `key error due to "last_name"`.
func Report(err error) string {
	return fmt.Sprintf("%s error due to %s", wrap.KindOf(err), wrap.Message(err))
}

func (s *Suppressor) report(ctx context.Context, err error) {
	kind := wrap.KindOf(err)
	s.logger.Warn(ctx, "suppressed error",
		observe.Field{Key: "error_kind", Value: kind.String()},
		observe.Field{Key: "error", Value: wrap.Message(err)},
		observe.Field{Key: "report", Value: Report(err)},
	)
	if s.reporter != nil {
		s.reporter(ctx, kind, err)
	}
}

// Suppress returns a decorator that swallows the failures s designates.
// A suppressed call returns the zero value of T and a nil error.
func Suppress[T any](s *Suppressor) wrap.Decorator[T] {
	return func(fn wrap.Func[T]) wrap.Func[T] {
		return func(ctx context.Context, args wrap.Args) (T, error) {
			result, err := fn(ctx, args)
			if err == nil || !s.Suppresses(err) {
				return result, err
			}

			s.report(ctx, err)
			var zero T
			return zero, nil
		}
	}
}
