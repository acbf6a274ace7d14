package order

import "slices"

// productTransitions is the product-level transition table. Terminal statuses map to
// an empty list.
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductPending:             {ProductReady, ProductPartiallyReady, ProductCancelled},
	ProductReady:               {ProductDispatched, ProductCancelled},
	ProductPartiallyReady:      {ProductReady, ProductPartiallyDispatched, ProductCancelled},
	ProductDispatched:          {ProductDelivered, ProductCancelled},
	ProductPartiallyDispatched: {ProductDispatched, ProductPartiallyDelivered, ProductCancelled},
	ProductPartiallyDelivered:  {ProductDelivered, ProductCancelled},
	ProductDelivered:           {},
	ProductCancelled:           {},
}

// IsValidTransition reports whether next is a listed successor of current.
//
// The predicate is advisory: AllocateInventory, DispatchProducts and DeliverProducts
// compute the resulting status from the line item counters and do not consult it.
func IsValidTransition(current, next ProductStatus) bool {
	return slices.Contains(productTransitions[current], next)
}

// Transitions returns a copy of the successors of current. The API reports them as a
// line item's next statuses.
func Transitions(current ProductStatus) []ProductStatus {
	return slices.Clone(productTransitions[current])
}
