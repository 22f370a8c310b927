package sim

import "errors"

// Error taxonomy. Callers wrap these with context and match with errors.Is.
// None of them is transient: the same seed and configuration reproduce the
// same failure.
var (
	// ErrInvalidParameters reports a bad distribution or queue configuration,
	// including sampled values that violate a precondition (negative
	// inter-arrival gap, negative service duration).
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrStationsExhausted reports that every station closed before all
	// customers were served. Fatal to the replication that hit it.
	ErrStationsExhausted = errors.New("all stations closed")

	// ErrShapeMismatch reports inconsistent station, shift or customer counts.
	ErrShapeMismatch = errors.New("shape mismatch")
)
