package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's validation taxonomy. Construction and
// argument validation fail synchronously with one of these; errors raised
// inside a running stage are captured into its result cell instead.
var (
	// ErrInvalidConstruction is returned when a result cell is built with
	// neither or both of a value and an error.
	ErrInvalidConstruction = errors.New("invalid construction")

	// ErrInvalidType is returned when a wrong argument type reaches the
	// facade or adapter construction.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidValue is returned for well-typed but semantically malformed
	// arguments (wrong-length field lists, mismatched initial samples).
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotImplemented is returned when the base runnable's Next is invoked
	// directly, signalling that a concrete transition was never supplied.
	ErrNotImplemented = errors.New("not implemented")
)

// RunnableError is a diagnosable failure carrying the state in effect when it
// was raised, so failures travel together with the offending context.
type RunnableError struct {
	Message string
	State   *State
	Err     error
}

// NewRunnableError builds a RunnableError for the given state.
func NewRunnableError(msg string, state *State) *RunnableError {
	return &RunnableError{Message: msg, State: state}
}

func (e *RunnableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause, if any.
func (e *RunnableError) Unwrap() error { return e.Err }
