package textproc

import (
	"context"

	"github.com/jonwraymond/funcwrap/wrap"
)

// Step is a named text transform.
type Step struct {
	Name  string
	Apply func(string) string
}

// Built-in steps.
var (
	StripPunctuationStep = Step{Name: "strip_punctuation", Apply: StripPunctuation}
	CapitalizeEdgesStep  = Step{Name: "capitalize_edges", Apply: CapitalizeEdges}
)

// Transform returns a decorator that applies step to the wrapped function's
// result. Errors from the wrapped function are returned unchanged and the
// step is not applied.
func Transform(step Step) wrap.Decorator[string] {
	return func(fn wrap.Func[string]) wrap.Func[string] {
		return func(ctx context.Context, args wrap.Args) (string, error) {
			s, err := fn(ctx, args)
			if err != nil {
				return s, err
			}
			return step.Apply(s), nil
		}
	}
}

// Pipeline builds a named pipeline applying steps to a result in the order
// given.
func Pipeline(steps ...Step) (*wrap.Pipeline[string], error) {
	wsteps := make([]wrap.Step[string], len(steps))
	for i, s := range steps {
		var d wrap.Decorator[string]
		if s.Apply != nil {
			d = Transform(s)
		}
		wsteps[i] = wrap.Step[string]{Name: s.Name, Decorator: d}
	}
	return wrap.NewPipeline(wsteps...)
}

// Apply runs steps over s in order.
func Apply(s string, steps ...Step) string {
	for _, step := range steps {
		s = step.Apply(s)
	}
	return s
}
