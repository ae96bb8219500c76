package validate

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jonwraymond/funcwrap/wrap"
)

// MinLength returns a decorator that fails with a *ValidationError when the
// string result has fewer than n characters. Characters are counted as runes.
func MinLength(n int) (wrap.Decorator[string], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidBounds, n)
	}
	return minLen("min_length", n, utf8.RuneCountInString), nil
}

// MinItems is MinLength for slice results.
func MinItems[E any](n int) (wrap.Decorator[[]E], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidBounds, n)
	}
	return minLen("min_items", n, func(s []E) int { return len(s) }), nil
}

func minLen[T any](rule string, n int, length func(T) int) wrap.Decorator[T] {
	return func(fn wrap.Func[T]) wrap.Func[T] {
		return func(ctx context.Context, args wrap.Args) (T, error) {
			result, err := fn(ctx, args)
			if err != nil {
				return result, err
			}
			if got := length(result); got < n {
				var zero T
				return zero, &ValidationError{
					Rule:   rule,
					Result: result,
					Err:    ErrTooShort,
					Detail: fmt.Sprintf("length %d < %d", got, n),
				}
			}
			return result, nil
		}
	}
}
