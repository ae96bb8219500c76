// Package wrap provides the core types for function decorators.
//
// A Func is any computation that takes call arguments and returns a result or
// an error. A Decorator wraps a Func to add cross-cutting behavior (timing,
// validation, caching, error policy) without touching the Func's own logic.
//
// # Composition
//
// Decorators are composed explicitly with Chain or a named Pipeline. The first
// decorator listed is applied first: it sits closest to the base function and
// sees its result before any later decorator does.
//
//	greet := wrap.Chain(base,
//	    textproc.Transform(textproc.StripPunctuationStep), // runs first on the result
//	    textproc.Transform(textproc.CapitalizeEdgesStep),  // runs second
//	)
//
// Order is part of the contract and is never rearranged.
//
// # Errors
//
// The package defines a closed taxonomy of error kinds (see Kind). Decorators
// that act on errors, such as resilience.Suppress, classify with KindOf
// rather than by concrete type.
package wrap
