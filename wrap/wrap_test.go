package wrap

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// tagger returns a decorator that appends tag to the string result.
func tagger(tag string) Decorator[string] {
	return func(fn Func[string]) Func[string] {
		return func(ctx context.Context, args Args) (string, error) {
			s, err := fn(ctx, args)
			if err != nil {
				return s, err
			}
			return s + tag, nil
		}
	}
}

func TestChain_AppliesInDeclaredOrder(t *testing.T) {
	base := Lift(func(Args) string { return "base" })

	got, err := Chain(base, tagger("-a"), tagger("-b"), tagger("-c"))(context.Background(), Args{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "base-a-b-c" {
		t.Errorf("got %q, want %q", got, "base-a-b-c")
	}

	reversed, _ := Chain(base, tagger("-c"), tagger("-b"), tagger("-a"))(context.Background(), Args{})
	if reversed == got {
		t.Errorf("expected order to change the result, both were %q", got)
	}
}

func TestChain_NoDecorators(t *testing.T) {
	calls := 0
	base := func(_ context.Context, _ Args) (int, error) {
		calls++
		return 7, nil
	}

	got, err := Chain(base)(context.Background(), Args{})
	if err != nil || got != 7 {
		t.Fatalf("got (%d, %v), want (7, nil)", got, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestChain_SkipsNil(t *testing.T) {
	base := Lift(func(Args) string { return "x" })
	got, _ := Chain(base, nil, tagger("!"))(context.Background(), Args{})
	if got != "x!" {
		t.Errorf("got %q, want %q", got, "x!")
	}
}

func TestChain_PropagatesError(t *testing.T) {
	testErr := errors.New("boom")
	base := func(_ context.Context, _ Args) (string, error) {
		return "", testErr
	}

	_, err := Chain(base, tagger("-a"))(context.Background(), Args{})
	if err != testErr {
		t.Errorf("expected error %v unchanged, got %v", testErr, err)
	}
}

func TestPipeline_Names(t *testing.T) {
	p, err := NewPipeline(
		Step[string]{Name: "first", Decorator: tagger("1")},
		Step[string]{Name: "second", Decorator: tagger("2")},
	)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	if got := p.Names(); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Errorf("Names() = %v", got)
	}

	got, _ := p.Wrap(Lift(func(Args) string { return "s" }))(context.Background(), Args{})
	if got != "s12" {
		t.Errorf("Wrap() result = %q, want %q", got, "s12")
	}
}

func TestNewPipeline_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step[string]
		want  error
	}{
		{
			name:  "unnamed",
			steps: []Step[string]{{Decorator: tagger("x")}},
			want:  ErrUnnamedStep,
		},
		{
			name:  "nil decorator",
			steps: []Step[string]{{Name: "x"}},
			want:  ErrNilDecorator,
		},
		{
			name: "duplicate",
			steps: []Step[string]{
				{Name: "x", Decorator: tagger("1")},
				{Name: "x", Decorator: tagger("2")},
			},
			want: ErrDuplicateStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.steps...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewPipeline() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestArg(t *testing.T) {
	args := Positional("shulyak", 30)

	name, err := Arg[string](args, 0)
	if err != nil || name != "shulyak" {
		t.Errorf("Arg[string](0) = (%q, %v)", name, err)
	}

	age, err := Arg[int](args, 1)
	if err != nil || age != 30 {
		t.Errorf("Arg[int](1) = (%d, %v)", age, err)
	}

	if _, err := Arg[int](args, 0); KindOf(err) != KindType {
		t.Errorf("type mismatch kind = %v, want %v", KindOf(err), KindType)
	}

	if _, err := Arg[int](args, 5); KindOf(err) != KindIndex {
		t.Errorf("out of range kind = %v, want %v", KindOf(err), KindIndex)
	}
}

func TestKeywordArg(t *testing.T) {
	args := Positional().With("greeting", "hi")

	v, err := KeywordArg[string](args, "greeting")
	if err != nil || v != "hi" {
		t.Errorf("KeywordArg() = (%q, %v)", v, err)
	}

	if _, err := KeywordArg[string](args, "missing"); KindOf(err) != KindKey {
		t.Errorf("missing kind = %v, want %v", KindOf(err), KindKey)
	}

	if _, err := KeywordArg[int](args, "greeting"); KindOf(err) != KindType {
		t.Errorf("mismatch kind = %v, want %v", KindOf(err), KindType)
	}
}

func TestArgs_WithDoesNotMutate(t *testing.T) {
	orig := Positional(1).With("a", 1)
	_ = orig.With("b", 2)

	if len(orig.Keyword) != 1 {
		t.Errorf("With mutated the receiver: %v", orig.Keyword)
	}
	if orig.Len() != 1 {
		t.Errorf("Len() = %d, want 1", orig.Len())
	}
}
