package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

const (
	noteCreated  = "Order created"
	noteApproved = "Order approved"
	noteRejected = "Order rejected"
)

// Order is the aggregate root of the fulfillment domain. It owns its line items and
// its audit trail.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and at least one line item
//   - Line item identifiers are unique within the order
//   - Every line item satisfies 0 <= delivered <= dispatched <= allocated <= quantity
//   - Status changes only through Approve, Reject, AllocateInventory, DispatchProducts
//     and DeliverProducts; every successful call appends exactly one history entry
//
// Operations never mutate the receiver. They return a new *Order that shares nothing
// mutable with the original, so a failed operation leaves the caller's value untouched.
type Order struct {
	id       kernel.UUID
	details  Details
	status   Status
	products []Product
	history  []HistoryEntry

	created  Stamp
	approved Stamp

	// version is the persisted revision used for optimistic concurrency.
	version int

	isConstructed bool
}

// NewOrder creates an order in PendingApproval with every line item pending. The
// creation is recorded as the first history entry.
//
// Example:
//
//	p, _ := order.NewProduct(kernel.NewUUID(), "Widget", "W-1", 10)
//	o, err := order.NewOrder(kernel.NewUUID(), details, []order.Product{p}, "alice", time.Now())
func NewOrder(id kernel.UUID, details Details, products []Product, createdBy string, at time.Time) (*Order, error) {
	o := &Order{
		status:        PendingApproval,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setProducts(products),
		o.setCreated(createdBy, at),
	); err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(at, PendingApproval, createdBy, noteCreated)
	if err != nil {
		return nil, err
	}
	o.history = []HistoryEntry{entry}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without replaying its history.
// approved may be the zero Stamp.
func RestoreOrder(
	id kernel.UUID,
	details Details,
	status Status,
	products []Product,
	history []HistoryEntry,
	created, approved Stamp,
	version int,
) (*Order, error) {
	o := &Order{isConstructed: true}

	var versionErr error
	if version < 0 {
		versionErr = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setProducts(products),
		status.Validate(),
		o.setCreated(created.By(), created.At()),
		versionErr,
	); err != nil {
		return nil, err
	}

	o.status = status
	o.history = slices.Clone(history)
	o.approved = approved
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Status() Status {
	return o.status
}

// Products returns a copy of the line items in their original order.
func (o *Order) Products() []Product {
	return slices.Clone(o.products)
}

// Product returns the line item with the given id.
func (o *Order) Product(id kernel.UUID) (Product, error) {
	i, err := o.productIndex(id)
	if err != nil {
		return Product{}, err
	}
	return o.products[i], nil
}

// ProductStatuses returns the status of every line item in order.
func (o *Order) ProductStatuses() []ProductStatus {
	statuses := make([]ProductStatus, len(o.products))
	for i, p := range o.products {
		statuses[i] = p.status
	}
	return statuses
}

// History returns a copy of the audit trail, oldest first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

// LatestHistoryEntry returns the most recent audit record.
func (o *Order) LatestHistoryEntry() (HistoryEntry, bool) {
	if len(o.history) == 0 {
		return HistoryEntry{}, false
	}
	return o.history[len(o.history)-1], true
}

func (o *Order) Created() Stamp {
	return o.created
}

// Approved returns the approval stamp, or the zero Stamp when the order was never approved.
func (o *Order) Approved() Stamp {
	return o.approved
}

func (o *Order) Version() int {
	return o.version
}

// WithVersion returns a copy carrying the given persisted revision.
func (o *Order) WithVersion(version int) *Order {
	next := o.clone()
	next.version = version
	return next
}

// Approve moves a pending order to Approved.
func (o *Order) Approve(user string, at time.Time) (*Order, error) {
	if err := errors.Join(o.Validate(), validateUser(user)); err != nil {
		return nil, err
	}
	if o.status != PendingApproval {
		return nil, errs.NewInvalidStateError("order", o.status.String(), "only pending orders can be approved")
	}

	next := o.clone()
	next.status = Approved
	next.approved = Stamp{by: user, at: at}
	return next.record(at, user, noteApproved)
}

// Reject cancels a pending order and every line item. Counters are left untouched.
func (o *Order) Reject(user string, at time.Time) (*Order, error) {
	if err := errors.Join(o.Validate(), validateUser(user)); err != nil {
		return nil, err
	}
	if o.status != PendingApproval {
		return nil, errs.NewInvalidStateError("order", o.status.String(), "only pending orders can be rejected")
	}

	next := o.clone()
	for i := range next.products {
		next.products[i] = next.products[i].cancel()
	}
	next.status = Cancelled
	return next.record(at, user, noteRejected)
}

// AllocateInventory reserves quantity units for a line item. Allocation does not require
// the order to be approved.
func (o *Order) AllocateInventory(productID kernel.UUID, quantity int, user string, at time.Time) (*Order, error) {
	return o.advance(productID, quantity, user, at, Product.allocate, "Allocated")
}

// DispatchProducts ships quantity allocated units of a line item.
func (o *Order) DispatchProducts(productID kernel.UUID, quantity int, user string, at time.Time) (*Order, error) {
	return o.advance(productID, quantity, user, at, Product.dispatchUnits, "Dispatched")
}

// DeliverProducts confirms delivery of quantity dispatched units of a line item.
func (o *Order) DeliverProducts(productID kernel.UUID, quantity int, user string, at time.Time) (*Order, error) {
	return o.advance(productID, quantity, user, at, Product.deliverUnits, "Delivered")
}

type productStep func(p Product, quantity int, user string, at time.Time) (Product, error)

func (o *Order) advance(
	productID kernel.UUID,
	quantity int,
	user string,
	at time.Time,
	step productStep,
	verb string,
) (*Order, error) {
	if err := errors.Join(o.Validate(), validateUser(user)); err != nil {
		return nil, err
	}

	i, err := o.productIndex(productID)
	if err != nil {
		return nil, err
	}

	updated, err := step(o.products[i], quantity, user, at)
	if err != nil {
		return nil, err
	}

	next := o.clone()
	next.products[i] = updated
	next.status = DeriveStatus(next.ProductStatuses())

	note := fmt.Sprintf("%s %d units of %s (SKU: %s)", verb, quantity, updated.name, updated.sku)
	return next.record(at, user, note)
}

func (o *Order) record(at time.Time, user, note string) (*Order, error) {
	entry, err := NewHistoryEntry(at, o.status, user, note)
	if err != nil {
		return nil, err
	}
	o.history = append(o.history, entry)
	return o, nil
}

func (o *Order) clone() *Order {
	next := *o
	next.products = slices.Clone(o.products)
	next.history = slices.Clone(o.history)
	return &next
}

func (o *Order) productIndex(id kernel.UUID) (int, error) {
	for i, p := range o.products {
		if p.id.IsEqual(id) {
			return i, nil
		}
	}
	return -1, errs.NewObjectNotFoundError("productId", id.String())
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setProducts(products []Product) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := p.id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("products", err)
		}
		key := p.id.String()
		if _, ok := seen[key]; ok {
			return errs.NewValueIsInvalidErrorWithCause("products", fmt.Errorf("duplicate product id %s", key))
		}
		seen[key] = struct{}{}
	}

	o.products = slices.Clone(products)
	return nil
}

func (o *Order) setCreated(by string, at time.Time) error {
	stamp, err := NewStamp(by, at)
	if err != nil {
		return err
	}
	o.created = stamp
	return nil
}
