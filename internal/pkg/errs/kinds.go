package errs

import (
	"errors"
	"fmt"
	"strings"
)

// IsValidation reports whether err belongs to the validation kind: a required,
// malformed or out-of-range argument.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrValueIsRequired)
}

// IsNotFound reports whether err belongs to the not-found kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsInvalidState reports whether err belongs to the invalid-state kind.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// sanitize formats v with verb and keeps the result on a single line so it can be
// embedded in an error message.
func sanitize(verb string, v any) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(fmt.Sprintf(verb, v))
}
