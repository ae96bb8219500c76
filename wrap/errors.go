package wrap

import (
	"errors"
	"fmt"
)

// Sentinel errors for composition.
var (
	ErrUnnamedStep   = errors.New("wrap: pipeline step has no name")
	ErrNilDecorator  = errors.New("wrap: pipeline step has no decorator")
	ErrDuplicateStep = errors.New("wrap: duplicate pipeline step name")
)

// Kind classifies errors into a closed set of recoverable categories.
type Kind int

const (
	// KindUnknown is any error that carries no kind.
	KindUnknown Kind = iota
	// KindKey is a lookup of a key that is not present.
	KindKey
	// KindIndex is a positional access outside the valid range.
	KindIndex
	// KindValue is a value of the right type with unacceptable content.
	KindValue
	// KindType is a value of the wrong type, including arguments that cannot
	// be used as a cache key.
	KindType
	// KindValidation is a result that violates a declared bound.
	KindValidation
)

// String returns the kind name used in reports.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindIndex:
		return "index"
	case KindValue:
		return "value"
	case KindType:
		return "type"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Kinded is implemented by errors that carry a Kind.
type Kinded interface {
	error
	ErrorKind() Kind
}

// Error is an error tagged with a Kind.
type Error struct {
	Kind Kind
	Op   string // operation that failed (optional)
	Msg  string
	Err  error // underlying cause (optional)
}

// Errorf creates a tagged error with a formatted message.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// WrapKind tags err with kind. A nil err returns nil.
func WrapKind(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	s := e.Kind.String() + " error"
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if msg := e.Message(); msg != "" {
		s += ": " + msg
	}
	return s
}

// Message returns the message without the op and kind prefix.
func (e *Error) Message() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return ""
	}
}

// ErrorKind implements Kinded.
func (e *Error) ErrorKind() Kind { return e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first Kinded error in err's chain,
// or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k Kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindUnknown
}

// Message returns the message of the first Kinded error in err's chain
// without its kind prefix, falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}

// Ensure Error implements Kinded
var _ Kinded = (*Error)(nil)
