package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Clock returns the current time. Operations stamp history entries with it.
type Clock func() time.Time

// FulfillmentEngine applies fulfillment operations to orders.
//
// Every operation has the shape (order, args) -> order': the input order is never
// mutated. On success a new order is returned; on failure the result is nil and the
// error is typed (errs.ErrObjectNotFound, errs.ErrInvalidState or one of the validation
// sentinels), while the caller's input stays as it was. The engine keeps no state and
// takes no locks; serializing writes to the same order is the caller's concern.
//
// Example usage:
//
//	engine := services.NewFulfillmentEngine(time.Now)
//	updated, err := engine.AllocateInventory(o, productID, 40, "alice")
//	if errs.IsValidation(err) {
//	    // quantity rejected, o is unchanged
//	}
type FulfillmentEngine struct {
	now Clock
}

// NewFulfillmentEngine creates an engine that reads time from clock. A nil clock
// falls back to time.Now in UTC.
func NewFulfillmentEngine(clock Clock) FulfillmentEngine {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return FulfillmentEngine{now: clock}
}

// ApproveOrder moves a pending order to approved.
func (e FulfillmentEngine) ApproveOrder(o *order.Order, user string) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.Approve(user, e.now())
}

// RejectOrder cancels a pending order and all of its line items.
func (e FulfillmentEngine) RejectOrder(o *order.Order, user string) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.Reject(user, e.now())
}

// AllocateInventory reserves quantity units of a line item.
func (e FulfillmentEngine) AllocateInventory(
	o *order.Order,
	productID kernel.UUID,
	quantity int,
	user string,
) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.AllocateInventory(productID, quantity, user, e.now())
}

// DispatchProducts ships quantity allocated units of a line item.
func (e FulfillmentEngine) DispatchProducts(
	o *order.Order,
	productID kernel.UUID,
	quantity int,
	user string,
) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.DispatchProducts(productID, quantity, user, e.now())
}

// DeliverProducts records delivery of quantity dispatched units of a line item.
func (e FulfillmentEngine) DeliverProducts(
	o *order.Order,
	productID kernel.UUID,
	quantity int,
	user string,
) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.DeliverProducts(productID, quantity, user, e.now())
}

// IsValidTransition reports whether the product transition table lists next as a
// successor of current.
func (e FulfillmentEngine) IsValidTransition(current, next order.ProductStatus) bool {
	return order.IsValidTransition(current, next)
}

// DeriveOrderStatus computes the order status for the given line items.
func (e FulfillmentEngine) DeriveOrderStatus(products []order.Product) order.Status {
	statuses := make([]order.ProductStatus, len(products))
	for i, p := range products {
		statuses[i] = p.Status()
	}
	return order.DeriveStatus(statuses)
}
