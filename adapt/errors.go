package adapt

import "errors"

// Sentinel errors returned by the planner.
var (
	// ErrInvalidInput is returned for any input-validation failure: non-positive
	// error values, malformed histogram arrays, out-of-range fractions, or a
	// global element count too small for a variance. These are caller errors and
	// are never retried.
	ErrInvalidInput = errors.New("invalid input")
)
