// Package validate provides decorators that check a function's result.
//
// Bounds are fixed when the decorator is built. A result that violates them
// is returned as a *ValidationError (kind wrap.KindValidation) instead of the
// result; validators never swallow errors of their own or of the wrapped
// function.
package validate
