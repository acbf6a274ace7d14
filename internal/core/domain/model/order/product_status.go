package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ProductStatus is the fulfillment status of a single order line item.
//
// It is never assigned freely: operations compute it from the line item's counters
// (see statusForCounters), except for ProductCancelled which is set when the whole
// order is rejected.
type ProductStatus int

const (
	// ProductUnknown represents an invalid or undefined status.
	ProductUnknown ProductStatus = iota
	ProductPending
	ProductReady
	ProductPartiallyReady
	ProductDispatched
	ProductPartiallyDispatched
	ProductDelivered
	ProductPartiallyDelivered
	ProductCancelled
)

var productStatusNames = map[ProductStatus]string{
	ProductPending:             "pending",
	ProductReady:               "ready",
	ProductPartiallyReady:      "partially_ready",
	ProductDispatched:          "dispatched",
	ProductPartiallyDispatched: "partially_dispatched",
	ProductDelivered:           "delivered",
	ProductPartiallyDelivered:  "partially_delivered",
	ProductCancelled:           "cancelled",
}

// ProductStatuses returns every valid product status in declaration order.
func ProductStatuses() []ProductStatus {
	return []ProductStatus{
		ProductPending,
		ProductReady,
		ProductPartiallyReady,
		ProductDispatched,
		ProductPartiallyDispatched,
		ProductDelivered,
		ProductPartiallyDelivered,
		ProductCancelled,
	}
}

// ParseProductStatus converts the wire name (e.g. "partially_ready") into a ProductStatus.
func ParseProductStatus(s string) (ProductStatus, error) {
	for status, name := range productStatusNames {
		if name == s {
			return status, nil
		}
	}
	return ProductUnknown, errs.NewValueIsInvalidErrorWithCause(
		"product status", fmt.Errorf("%q is not a valid product status", s),
	)
}

// Validate returns an error for ProductUnknown and out-of-range values.
func (s ProductStatus) Validate() error {
	if _, ok := productStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"product status is invalid", fmt.Errorf("%d is not a valid product status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, or "unknown".
func (s ProductStatus) String() string {
	if name, ok := productStatusNames[s]; ok {
		return name
	}
	return "unknown"
}
