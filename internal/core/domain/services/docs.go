// Package services provides domain services of the fulfillment system. It implements
// business workflows that are driven from outside the Order aggregate.
//
// The package includes:
//   - FulfillmentEngine: the stateless entry point for approve, reject, allocate,
//     dispatch and deliver, plus transition checks and status derivation
//
// Domain services hold no state of their own; callers own loading and persisting
// aggregates, following Domain-Driven Design principles.
package services
