package validate

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/funcwrap/wrap"
)

// Sentinel errors for validation.
var (
	// ErrOutOfRange indicates a result outside its inclusive bounds.
	ErrOutOfRange = errors.New("validate: result out of range")

	// ErrTooShort indicates a result shorter than its minimum length.
	ErrTooShort = errors.New("validate: result too short")

	// ErrInvalidBounds indicates a validator built with min > max or a
	// negative length.
	ErrInvalidBounds = errors.New("validate: invalid bounds")
)

// ValidationError describes a result that failed a validator.
type ValidationError struct {
	Rule   string // "between", "min_length", "min_items"
	Result any
	Err    error // ErrOutOfRange or ErrTooShort
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: got %v", e.Err, e.Detail, e.Result)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ErrorKind implements wrap.Kinded.
func (e *ValidationError) ErrorKind() wrap.Kind { return wrap.KindValidation }

// Ensure ValidationError implements wrap.Kinded
var _ wrap.Kinded = (*ValidationError)(nil)
