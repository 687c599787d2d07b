package grover

import "errors"

// Construction and run errors.
var (
	// ErrInvalidSize indicates a vector length that is not positive.
	ErrInvalidSize = errors.New("grover: vector size must be positive")

	// ErrMarkedOutOfRange indicates a marked index outside [0, N).
	ErrMarkedOutOfRange = errors.New("grover: marked index out of range")

	// ErrNegativeIterations indicates a run asked for fewer than zero steps.
	ErrNegativeIterations = errors.New("grover: iterations must not be negative")
)
