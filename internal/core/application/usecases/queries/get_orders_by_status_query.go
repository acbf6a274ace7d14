// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
		"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
	)
)

// GetOrdersByStatusQuery lists order summaries, oldest first. The zero status
// (order.Unknown) lists orders in every status.
//
// Example:
//
//	query, err := NewGetOrdersByStatusQuery(order.PendingApproval)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list pending orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("Order %s for %s waiting since %s\n", o.ID, o.Customer, o.CreatedAt)
//	}
type GetOrdersByStatusQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery validates the filter. Pass order.Unknown to disable it.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetOrdersByStatusQuery{}, err
		}
	}

	return GetOrdersByStatusQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

// IsFiltered reports whether the query is restricted to one status.
func (q GetOrdersByStatusQuery) IsFiltered() bool {
	return q.status != order.Unknown
}

// GetOrdersByStatusQueryResponse is one order summary row.
type GetOrdersByStatusQueryResponse struct {
	ID           kernel.UUID
	Customer     string
	Reference    string
	Priority     order.Priority
	Status       order.Status
	CreatedAt    time.Time
	CreatedBy    string
	ProductCount int
}
