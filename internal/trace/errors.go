package trace

import (
	"errors"
	"fmt"
)

// Domain errors for step generation and playback.
var (
	// ErrInvalidSize indicates a requested array size below one.
	ErrInvalidSize = errors.New("trace: array size must be at least 1")

	// ErrInvalidValue indicates a non-finite or non-positive element value.
	ErrInvalidValue = errors.New("trace: element value must be finite and positive")

	// ErrDuplicateIndex indicates two elements sharing the same identity.
	ErrDuplicateIndex = errors.New("trace: duplicate element index")

	// ErrUnsupportedAlgorithm indicates an algorithm selector with no generator.
	ErrUnsupportedAlgorithm = errors.New("trace: unsupported algorithm")

	// ErrInvalidSpeed indicates a playback speed outside [10, 100].
	ErrInvalidSpeed = errors.New("trace: speed must be between 10 and 100 percent")

	// ErrNoSteps indicates playback was requested for an empty sequence.
	ErrNoSteps = errors.New("trace: no steps to play")
)

// StepError wraps an error with the algorithm and step it relates to.
type StepError struct {
	Algorithm string
	Step      int
	Wrapped   error
}

func (e *StepError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("%s: %v", e.Algorithm, e.Wrapped)
	}
	return fmt.Sprintf("%s step %d: %v", e.Algorithm, e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
