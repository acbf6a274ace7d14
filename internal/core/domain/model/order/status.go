package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the order-level fulfillment status.
//
// Apart from Approved (set by Approve) and Cancelled (set by Reject), the status is
// derived from the statuses of the order's line items, see DeriveStatus.
//
//	PendingApproval ──approve──> Approved ──allocate/dispatch/deliver──> Ready | PartialFulfillment | Dispatched | Delivered
//	       │
//	       └──reject──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingApproval is the initial status of every new order.
	PendingApproval

	// Approved means the order was accepted and fulfillment may start.
	Approved

	// Ready means every line item is fully allocated.
	Ready

	// Dispatched means every line item is fully dispatched.
	Dispatched

	// Delivered means every line item is fully delivered. Final.
	Delivered

	// PartialFulfillment means line items are at different pipeline stages.
	PartialFulfillment

	// Cancelled means the order was rejected. Final.
	Cancelled
)

var statusNames = map[Status]string{
	PendingApproval:    "pending_approval",
	Approved:           "approved",
	Ready:              "ready",
	Dispatched:         "dispatched",
	Delivered:          "delivered",
	PartialFulfillment: "partial_fulfillment",
	Cancelled:          "cancelled",
}

// Statuses returns every valid order status in declaration order.
func Statuses() []Status {
	return []Status{PendingApproval, Approved, Ready, Dispatched, Delivered, PartialFulfillment, Cancelled}
}

// ParseStatus converts the wire name (e.g. "pending_approval") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
