package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidState is the sentinel wrapped by every InvalidStateError.
var ErrInvalidState = errors.New("invalid state")

// InvalidStateError reports an operation requested on an entity whose current state
// does not allow it, e.g. approving an order that is no longer pending approval.
//
// Entity names the kind of object ("order", "product"), State is its current state
// and Reason is the human readable rule that was broken.
type InvalidStateError struct {
	Entity string
	State  string
	Reason string
	Cause  error
}

func NewInvalidStateError(entity, state, reason string) *InvalidStateError {
	return &InvalidStateError{
		Entity: entity,
		State:  state,
		Reason: reason,
	}
}

func NewInvalidStateErrorWithCause(entity, state, reason string, cause error) *InvalidStateError {
	return &InvalidStateError{
		Entity: entity,
		State:  state,
		Reason: reason,
		Cause:  cause,
	}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: %s (%s is %s)", ErrInvalidState, e.Reason, e.Entity, e.State)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
