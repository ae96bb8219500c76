package wrap

import (
	"context"
	"fmt"
)

// Args holds the arguments of a single call.
//
// Positional arguments are ordered; keyword arguments are named. Decorators
// must not mutate either.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Positional builds Args from positional values.
func Positional(vals ...any) Args {
	return Args{Positional: vals}
}

// With returns a copy of a with the keyword argument key set to val.
func (a Args) With(key string, val any) Args {
	kw := make(map[string]any, len(a.Keyword)+1)
	for k, v := range a.Keyword {
		kw[k] = v
	}
	kw[key] = val
	return Args{Positional: a.Positional, Keyword: kw}
}

// Len returns the number of positional arguments.
func (a Args) Len() int {
	return len(a.Positional)
}

// Arg returns the positional argument at index i as a T.
// Out of range is a KindIndex error, a type mismatch is a KindType error.
func Arg[T any](args Args, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args.Positional) {
		return zero, Errorf(KindIndex, "wrap.Arg", "positional index %d out of range [0,%d)", i, len(args.Positional))
	}
	v, ok := args.Positional[i].(T)
	if !ok {
		return zero, Errorf(KindType, "wrap.Arg", "positional %d is %T, want %T", i, args.Positional[i], zero)
	}
	return v, nil
}

// KeywordArg returns the keyword argument name as a T.
// A missing name is a KindKey error, a type mismatch is a KindType error.
func KeywordArg[T any](args Args, name string) (T, error) {
	var zero T
	raw, ok := args.Keyword[name]
	if !ok {
		return zero, Errorf(KindKey, "wrap.KeywordArg", "%q", name)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, Errorf(KindType, "wrap.KeywordArg", "keyword %q is %T, want %T", name, raw, zero)
	}
	return v, nil
}

// Func is the signature every decorator wraps.
type Func[T any] func(ctx context.Context, args Args) (T, error)

// Decorator wraps a Func with additional behavior.
//
// Contract:
//   - The returned Func calls fn at most once per call unless documented otherwise.
//   - Errors from fn are propagated unchanged unless the decorator's purpose
//     is to act on them.
type Decorator[T any] func(fn Func[T]) Func[T]

// Lift adapts an infallible, context-free function to a Func.
func Lift[T any](fn func(Args) T) Func[T] {
	return func(_ context.Context, args Args) (T, error) {
		return fn(args), nil
	}
}

// Chain applies decorators to fn in the order given.
//
// decorators[0] wraps fn directly, decorators[1] wraps that, and so on, so the
// last decorator is outermost. For result post-processing this means the
// first decorator transforms the result first. Nil decorators are skipped.
func Chain[T any](fn Func[T], decorators ...Decorator[T]) Func[T] {
	wrapped := fn
	for _, d := range decorators {
		if d == nil {
			continue
		}
		wrapped = d(wrapped)
	}
	return wrapped
}

// Step is a named decorator in a Pipeline.
type Step[T any] struct {
	Name      string
	Decorator Decorator[T]
}

// Pipeline is an ordered, inspectable list of named decorators.
type Pipeline[T any] struct {
	steps []Step[T]
}

// NewPipeline creates a pipeline that applies steps in the order given.
// It returns an error if a step has no name or no decorator, or if two steps
// share a name.
func NewPipeline[T any](steps ...Step[T]) (*Pipeline[T], error) {
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: step %d", ErrUnnamedStep, i)
		}
		if s.Decorator == nil {
			return nil, fmt.Errorf("%w: step %q", ErrNilDecorator, s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStep, s.Name)
		}
		seen[s.Name] = true
	}
	return &Pipeline[T]{steps: append([]Step[T](nil), steps...)}, nil
}

// Names returns the step names in application order.
func (p *Pipeline[T]) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Wrap applies the pipeline to fn, equivalent to Chain with the same order.
func (p *Pipeline[T]) Wrap(fn Func[T]) Func[T] {
	decorators := make([]Decorator[T], len(p.steps))
	for i, s := range p.steps {
		decorators[i] = s.Decorator
	}
	return Chain(fn, decorators...)
}
