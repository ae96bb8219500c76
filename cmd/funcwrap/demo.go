package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jonwraymond/funcwrap/cache"
	"github.com/jonwraymond/funcwrap/observe"
	"github.com/jonwraymond/funcwrap/resilience"
	"github.com/jonwraymond/funcwrap/textproc"
	"github.com/jonwraymond/funcwrap/validate"
	"github.com/jonwraymond/funcwrap/wrap"
)

const baseText = "the French revolution resulted in 3 concepts: freedom,equality,fraternity"

type demo struct {
	out      io.Writer
	logger   observe.Logger
	mw       *observe.Middleware
	maxPause time.Duration
}

func (d *demo) run(ctx context.Context) error {
	scenarios := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"timed task", d.timedTask},
		{"suppressed lookup", d.suppressedLookup},
		{"range validation", d.rangeValidation},
		{"length validation", d.lengthValidation},
		{"text pipelines", d.textPipelines},
		{"memoized greeting", d.memoizedGreeting},
	}

	for _, s := range scenarios {
		fmt.Fprintf(d.out, "== %s\n", s.name)
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// instrumented chains decorators with tracing and metrics outermost.
func instrumented[T any](mw *observe.Middleware, meta observe.FuncMeta, fn wrap.Func[T], decorators ...wrap.Decorator[T]) (wrap.Func[T], error) {
	inst, err := observe.Instrument[T](mw, meta)
	if err != nil {
		return nil, err
	}
	return wrap.Chain(fn, append(decorators, inst)...), nil
}

func (d *demo) pause(ctx context.Context) error {
	if d.maxPause <= 0 {
		return nil
	}
	select {
	case <-time.After(rand.N(d.maxPause)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *demo) timedTask(ctx context.Context) error {
	meta := observe.FuncMeta{Namespace: "demo", Name: "my_task"}
	task := func(ctx context.Context, _ wrap.Args) (string, error) {
		for step := 1; step <= 3; step++ {
			fmt.Fprintf(d.out, "step %d\n", step)
			if err := d.pause(ctx); err != nil {
				return "", err
			}
		}
		return "task finished", nil
	}

	fn, err := instrumented(d.mw, meta, task, observe.Duration[string](d.logger, meta))
	if err != nil {
		return err
	}
	result, err := fn(ctx, wrap.Args{})
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, result)
	return nil
}

func (d *demo) suppressedLookup(ctx context.Context) error {
	meta := observe.FuncMeta{Namespace: "demo", Name: "potentially_unsafe_func"}
	s, err := resilience.NewSuppressor([]wrap.Kind{wrap.KindKey, wrap.KindValue},
		resilience.WithLogger(d.logger),
		resilience.WithFuncMeta(meta),
		resilience.WithReporter(func(_ context.Context, _ wrap.Kind, err error) {
			fmt.Fprintln(d.out, resilience.Report(err))
		}),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "suppressing %v\n", s.Kinds())

	record := map[string]any{"name": "test"}
	lookup := func(_ context.Context, args wrap.Args) (string, error) {
		key, err := wrap.Arg[string](args, 0)
		if err != nil {
			return "", err
		}
		return wrap.KeywordArg[string](wrap.Args{Keyword: record}, key)
	}

	fn, err := instrumented(d.mw, meta, lookup, resilience.Suppress[string](s))
	if err != nil {
		return err
	}
	for _, key := range []string{"name", "last_name"} {
		v, err := fn(ctx, wrap.Positional(key))
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "potentially_unsafe_func(%q) = %q\n", key, v)
	}
	return nil
}

func sumOfValues(_ context.Context, args wrap.Args) (int, error) {
	total := 0
	for i := range args.Positional {
		n, err := wrap.Arg[int](args, i)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (d *demo) rangeValidation(ctx context.Context) error {
	between, err := validate.Between(0, 10)
	if err != nil {
		return err
	}
	fn, err := instrumented(d.mw, observe.FuncMeta{Namespace: "demo", Name: "sum_of_values"}, sumOfValues, between)
	if err != nil {
		return err
	}

	// The sum of 1, 3, 5 and 7 is outside [0, 10]; the error is the expected outcome.
	if _, err := fn(ctx, wrap.Positional(1, 3, 5, 7)); err != nil {
		fmt.Fprintf(d.out, "sum_of_values(1, 3, 5, 7) failed: %v\n", err)
		return nil
	}
	return fmt.Errorf("sum_of_values(1, 3, 5, 7) passed validation")
}

func (d *demo) lengthValidation(ctx context.Context) error {
	minLen, err := validate.MinLength(10)
	if err != nil {
		return err
	}
	showMessage := func(_ context.Context, args wrap.Args) (string, error) {
		msg, err := wrap.Arg[string](args, 0)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Hi, you sent: %s", msg), nil
	}

	fn, err := instrumented(d.mw, observe.FuncMeta{Namespace: "demo", Name: "show_message"}, showMessage, minLen)
	if err != nil {
		return err
	}
	msg, err := fn(ctx, wrap.Positional("Howdy, howdy my little friend"))
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, msg)
	return nil
}

func (d *demo) textPipelines(ctx context.Context) error {
	base := func(_ context.Context, args wrap.Args) (string, error) {
		s, err := wrap.Arg[string](args, 0)
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(s, ":", ","), nil
	}

	orders := []struct {
		name  string
		steps []textproc.Step
	}{
		{"process_text", []textproc.Step{textproc.StripPunctuationStep, textproc.CapitalizeEdgesStep}},
		{"another_process", []textproc.Step{textproc.CapitalizeEdgesStep, textproc.StripPunctuationStep}},
	}

	for _, o := range orders {
		p, err := textproc.Pipeline(o.steps...)
		if err != nil {
			return err
		}
		fn, err := instrumented(d.mw, observe.FuncMeta{Namespace: "demo", Name: o.name}, p.Wrap(base))
		if err != nil {
			return err
		}
		out, err := fn(ctx, wrap.Positional(baseText))
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "%s %v: %s\n", o.name, p.Names(), out)
	}
	return nil
}

func someFunc(_ context.Context, args wrap.Args) (string, error) {
	lastName, err := wrap.Arg[string](args, 0)
	if err != nil {
		return "", err
	}
	firstName, err := wrap.Arg[string](args, 1)
	if err != nil {
		return "", err
	}
	age, err := wrap.Arg[int](args, 2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Hi %s %s, you are %d years old", lastName, firstName, age), nil
}

func (d *demo) memoizedGreeting(ctx context.Context) error {
	meta := observe.FuncMeta{Namespace: "demo", Name: "some_func"}
	counted := func(ctx context.Context, args wrap.Args) (string, error) {
		fmt.Fprintf(d.out, "computing greeting for %v\n", args.Positional)
		return someFunc(ctx, args)
	}

	m, err := cache.NewMemoizer(counted, nil,
		cache.WithMetrics(d.mw.Metrics()),
		cache.WithLogger(d.logger),
		cache.WithFuncMeta(meta),
	)
	if err != nil {
		return err
	}
	fn, err := instrumented(d.mw, meta, m.Func())
	if err != nil {
		return err
	}

	calls := []wrap.Args{
		wrap.Positional("shulyak", "dmitry", 30),
		wrap.Positional("ivanov", "ivan", 25),
		wrap.Positional("shulyak", "dmitry", 30),
	}
	for _, args := range calls {
		v, err := fn(ctx, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(d.out, v)
	}
	stats := m.Stats()
	fmt.Fprintf(d.out, "cache: %d hits, %d misses, %d entries\n", stats.Hits, stats.Misses, stats.Entries)
	return nil
}
