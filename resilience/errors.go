package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrNoKinds is returned when a Suppressor is built without any error kinds.
	ErrNoKinds = errors.New("resilience: at least one error kind is required")
)
