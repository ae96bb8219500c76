// Package resilience keeps decorated functions running past expected failures.
//
// A Suppressor is built for a fixed set of error kinds. Suppress turns it
// into a decorator: when the wrapped function fails with one of those kinds,
// the failure is reported and the call returns the zero value with a nil
// error. Every other error propagates unmodified.
//
//	s, err := resilience.NewSuppressor([]wrap.Kind{wrap.KindKey},
//	    resilience.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	lookup := resilience.Suppress[string](s)(rawLookup)
//
// Errors are never retried.
package resilience
