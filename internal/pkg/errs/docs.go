// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per failure kind:
//   - ObjectNotFoundError: a referenced object (e.g. an order line item) does not exist
//   - InvalidStateError: an entity is not in a state that allows the requested operation
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - VersionIsInvalidError: a stale aggregate was written back after a concurrent change
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the error
//
// IsNotFound, IsInvalidState and IsValidation group the sentinels into the three kinds
// callers map to user-facing responses.
package errs
