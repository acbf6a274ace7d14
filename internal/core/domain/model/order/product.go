package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Product is a line item of an order. It is an entity inside the Order aggregate and is
// only changed through the order's operations.
//
// Counters obey 0 <= delivered <= dispatched <= allocated <= quantity. Unless the line
// item is cancelled, its status is a function of the counters:
//
//	delivered > 0   delivered == dispatched ? delivered : partially_delivered
//	dispatched > 0  dispatched == allocated ? dispatched : partially_dispatched
//	allocated > 0   allocated == quantity   ? ready      : partially_ready
//	otherwise       pending
type Product struct {
	id       kernel.UUID
	name     string
	sku      string
	quantity int

	allocated  int
	dispatched int
	delivered  int

	status ProductStatus

	allocation Stamp
	dispatch   Stamp
	delivery   Stamp
}

// NewProduct creates a pending line item with all counters at zero.
func NewProduct(id kernel.UUID, name, sku string, quantity int) (Product, error) {
	p := Product{status: ProductPending}
	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setSKU(sku),
		p.setQuantity(quantity),
	); err != nil {
		return Product{}, err
	}
	return p, nil
}

// RestoreProduct rebuilds a line item from persistence. It rejects counter combinations
// that break the chain invariant and statuses that disagree with the counters.
func RestoreProduct(
	id kernel.UUID,
	name, sku string,
	quantity, allocated, dispatched, delivered int,
	status ProductStatus,
	allocation, dispatch, delivery Stamp,
) (Product, error) {
	p, err := NewProduct(id, name, sku, quantity)
	if err != nil {
		return Product{}, err
	}

	if err := status.Validate(); err != nil {
		return Product{}, err
	}

	if err := validateCounters(quantity, allocated, dispatched, delivered); err != nil {
		return Product{}, err
	}

	if status != ProductCancelled {
		if expected := statusForCounters(quantity, allocated, dispatched, delivered); expected != status {
			return Product{}, errs.NewValueIsInvalidErrorWithCause(
				"product status",
				fmt.Errorf("%s does not match counters, expected %s", status, expected),
			)
		}
	}

	p.allocated = allocated
	p.dispatched = dispatched
	p.delivered = delivered
	p.status = status
	p.allocation = allocation
	p.dispatch = dispatch
	p.delivery = delivery
	return p, nil
}

func (p Product) ID() kernel.UUID          { return p.id }
func (p Product) Name() string             { return p.name }
func (p Product) SKU() string              { return p.sku }
func (p Product) Quantity() int            { return p.quantity }
func (p Product) AllocatedQuantity() int   { return p.allocated }
func (p Product) DispatchedQuantity() int  { return p.dispatched }
func (p Product) DeliveredQuantity() int   { return p.delivered }
func (p Product) Status() ProductStatus    { return p.status }
func (p Product) Allocation() Stamp        { return p.allocation }
func (p Product) Dispatch() Stamp          { return p.dispatch }
func (p Product) Delivery() Stamp          { return p.delivery }
func (p Product) RemainingToAllocate() int { return p.quantity - p.allocated }
func (p Product) RemainingToDispatch() int { return p.allocated - p.dispatched }
func (p Product) RemainingToDeliver() int  { return p.dispatched - p.delivered }

func (p Product) allocate(quantity int, user string, at time.Time) (Product, error) {
	if p.status != ProductPending && p.status != ProductPartiallyReady {
		return Product{}, errs.NewInvalidStateError("product", p.status.String(),
			"inventory can only be allocated to pending or partially ready products")
	}
	if err := validateIncrement(quantity, p.RemainingToAllocate(), "cannot allocate more than ordered quantity"); err != nil {
		return Product{}, err
	}

	p.allocated += quantity
	p.status = statusForCounters(p.quantity, p.allocated, p.dispatched, p.delivered)
	p.allocation = Stamp{by: user, at: at}
	return p, nil
}

func (p Product) dispatchUnits(quantity int, user string, at time.Time) (Product, error) {
	if p.status != ProductReady && p.status != ProductPartiallyReady && p.status != ProductPartiallyDispatched {
		return Product{}, errs.NewInvalidStateError("product", p.status.String(),
			"only ready, partially ready or partially dispatched products can be dispatched")
	}
	if err := validateIncrement(quantity, p.RemainingToDispatch(), "cannot dispatch more than allocated quantity"); err != nil {
		return Product{}, err
	}

	p.dispatched += quantity
	p.status = statusForCounters(p.quantity, p.allocated, p.dispatched, p.delivered)
	p.dispatch = Stamp{by: user, at: at}
	return p, nil
}

func (p Product) deliverUnits(quantity int, user string, at time.Time) (Product, error) {
	if p.status != ProductDispatched && p.status != ProductPartiallyDispatched && p.status != ProductPartiallyDelivered {
		return Product{}, errs.NewInvalidStateError("product", p.status.String(),
			"only dispatched, partially dispatched or partially delivered products can be delivered")
	}
	if err := validateIncrement(quantity, p.RemainingToDeliver(), "cannot deliver more than dispatched quantity"); err != nil {
		return Product{}, err
	}

	p.delivered += quantity
	p.status = statusForCounters(p.quantity, p.allocated, p.dispatched, p.delivered)
	p.delivery = Stamp{by: user, at: at}
	return p, nil
}

func (p Product) cancel() Product {
	p.status = ProductCancelled
	return p
}

// statusForCounters computes the line item status from its counters.
func statusForCounters(quantity, allocated, dispatched, delivered int) ProductStatus {
	switch {
	case delivered > 0:
		if delivered == dispatched {
			return ProductDelivered
		}
		return ProductPartiallyDelivered
	case dispatched > 0:
		if dispatched == allocated {
			return ProductDispatched
		}
		return ProductPartiallyDispatched
	case allocated > 0:
		if allocated == quantity {
			return ProductReady
		}
		return ProductPartiallyReady
	default:
		return ProductPending
	}
}

func validateIncrement(quantity, remaining int, reason string) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > remaining {
		return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 1, remaining, errors.New(reason))
	}
	return nil
}

func validateCounters(quantity, allocated, dispatched, delivered int) error {
	if delivered < 0 || delivered > dispatched || dispatched > allocated || allocated > quantity {
		return errs.NewValueIsInvalidErrorWithCause(
			"product counters",
			fmt.Errorf("expected 0 <= delivered(%d) <= dispatched(%d) <= allocated(%d) <= quantity(%d)",
				delivered, dispatched, allocated, quantity),
		)
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	p.quantity = quantity
	return nil
}
