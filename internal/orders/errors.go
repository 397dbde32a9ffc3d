package orders

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when a signal's action is neither buy nor sell
var ErrInvalidAction = errors.New("invalid action")

// ValidationError describes a signal rejected before it reaches the broker
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes the sentinel for errors.Is
func (e *ValidationError) Unwrap() error {
	return e.Err
}
