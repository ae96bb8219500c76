// Package observe provides observability decorators for wrapped functions.
//
// Duration reports the wall-clock time of each successful call. Instrument
// adds an OpenTelemetry span, call metrics and a completion log line to
// every call. Both write through the package's structured JSON Logger.
//
// Observer builds tracer, meter and logger from a Config; exporters are
// selected by name (see package exporters).
package observe
