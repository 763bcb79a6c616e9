package show

import (
	"errors"
	"fmt"
)

// Domain errors for the display engine.
var (
	// ErrNoPhases indicates an empty phase list.
	ErrNoPhases = errors.New("show: no phases configured")

	// ErrInvalidCanvas indicates a non-positive canvas size.
	ErrInvalidCanvas = errors.New("show: canvas size must be positive")

	// ErrNoInk indicates a label that rasterizes to no ink inside the sampling band.
	ErrNoInk = errors.New("show: label has no ink inside the sampling band")

	// ErrSamplingExhausted indicates the attempt cap ran out before the target count.
	ErrSamplingExhausted = errors.New("show: sampling attempts exhausted before target count")

	// ErrUnknownPreset indicates a preset name that does not exist.
	ErrUnknownPreset = errors.New("show: unknown preset")
)

// PhaseError wraps an error with the phase it happened in.
type PhaseError struct {
	Index   int
	Key     string
	Wrapped error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %d (%s): %v", e.Index, e.Key, e.Wrapped)
}

func (e *PhaseError) Unwrap() error {
	return e.Wrapped
}
