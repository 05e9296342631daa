package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// ComponentError is an error attributable to one component.
type ComponentError interface {
	error

	// Component returns the component name where the error occurred.
	Component() string
}

// AbortedError is returned when an atomic run stops at a failed component or
// is interrupted.
type AbortedError struct {
	// ComponentName is the component that failed.
	ComponentName string

	// Cause is the component's error.
	Cause error

	// RollbackErr is set when restoring the tree did not fully succeed.
	RollbackErr error
}

func (e *AbortedError) Error() string {
	verb := "failed"
	if errors.Is(e.Cause, context.Canceled) || errors.Is(e.Cause, context.DeadlineExceeded) {
		verb = "interrupted"
	}
	if e.RollbackErr != nil {
		return fmt.Sprintf("component %q %s and rollback was incomplete: %v (rollback: %v)", e.ComponentName, verb, e.Cause, e.RollbackErr)
	}
	return fmt.Sprintf("component %q %s, all changes rolled back: %v", e.ComponentName, verb, e.Cause)
}

func (e *AbortedError) Unwrap() error {
	return e.Cause
}

func (e *AbortedError) Component() string {
	return e.ComponentName
}
