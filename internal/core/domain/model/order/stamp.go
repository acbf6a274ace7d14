package order

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Stamp records who performed an action and when. The zero Stamp means the action
// has not happened yet.
type Stamp struct {
	by string
	at time.Time
}

// NewStamp creates a Stamp. Both the user and the timestamp are required.
func NewStamp(by string, at time.Time) (Stamp, error) {
	if err := errors.Join(validateUser(by), validateTime("at", at)); err != nil {
		return Stamp{}, err
	}
	return Stamp{by: by, at: at}, nil
}

// By returns the user that performed the action.
func (s Stamp) By() string {
	return s.by
}

// At returns when the action was performed.
func (s Stamp) At() time.Time {
	return s.at
}

// IsZero reports whether the action has not been recorded.
func (s Stamp) IsZero() bool {
	return s.by == "" && s.at.IsZero()
}

func validateUser(user string) error {
	if user == "" {
		return errs.NewValueIsRequiredError("user")
	}
	return nil
}

func validateTime(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
