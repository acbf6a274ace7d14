// Package ports defines the contracts between the fulfillment core and its adapters:
// persistence, per-order write serialization and event publishing.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates, including
// their line items and audit trail.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items and history.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	//
	// The write succeeds only if the stored version equals aggregate.Version(); the
	// stored version is then incremented. A stale aggregate fails with
	// errs.ErrVersionIsInvalid. History entries already stored are never rewritten,
	// only new ones are appended.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
