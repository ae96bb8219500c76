package validate

import (
	"cmp"
	"context"
	"fmt"

	"github.com/jonwraymond/funcwrap/wrap"
)

// Between returns a decorator that fails with a *ValidationError when the
// result is outside [lo, hi]. Both bounds are inclusive.
func Between[N cmp.Ordered](lo, hi N) (wrap.Decorator[N], error) {
	if cmp.Compare(lo, hi) > 0 {
		return nil, fmt.Errorf("%w: min %v > max %v", ErrInvalidBounds, lo, hi)
	}

	return func(fn wrap.Func[N]) wrap.Func[N] {
		return func(ctx context.Context, args wrap.Args) (N, error) {
			result, err := fn(ctx, args)
			if err != nil {
				return result, err
			}
			if cmp.Compare(result, lo) < 0 || cmp.Compare(result, hi) > 0 {
				var zero N
				return zero, &ValidationError{
					Rule:   "between",
					Result: result,
					Err:    ErrOutOfRange,
					Detail: fmt.Sprintf("want [%v, %v]", lo, hi),
				}
			}
			return result, nil
		}
	}, nil
}
