package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object used for orders and their line items.
// It wraps github.com/google/uuid so the domain never depends on the library type directly.
//
// The zero value is invalid; use NewUUID, UUIDFromString or UUIDFromBytes.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	productID, err := kernel.UUIDFromString(c.Param("productId"))
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID. Order ids and line item ids are
// both minted here, by the create-order handler.
//
// Example:
//
//	productID := kernel.NewUUID()
//	p, err := order.NewProduct(productID, "Widget", "W-1", 10)
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its textual form. Accepted forms:
//   - "9f2e6c1a-4b7d-4e0f-9a51-3c2d8e7f6b10"
//   - "{9f2e6c1a-4b7d-4e0f-9a51-3c2d8e7f6b10}"
//   - "urn:uuid:9f2e6c1a-4b7d-4e0f-9a51-3c2d8e7f6b10"
//   - the same 32 hex digits without hyphens
//
// The nil UUID parses successfully here; Validate rejects it.
//
// Example:
//
//	orderID, err := kernel.UUIDFromString(event.OrderID)
//	if err != nil {
//	    return fmt.Errorf("bad order id in event: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as stored by the
// persistence layer. The nil UUID is rejected.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(row.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for adapters (storage DTOs, HTTP bindings).
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
//
// Example:
//
//	for _, p := range o.Products() {
//	    if p.ID().IsEqual(productID) {
//	        return p, nil
//	    }
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
