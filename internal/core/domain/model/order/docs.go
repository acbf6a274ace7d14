// Package order provides the Order aggregate of the fulfillment domain: line items with
// allocate/dispatch/deliver counters, the product-level transition table, the derivation
// of the order status from line item statuses, and the append-only audit trail.
//
// The package includes:
//   - Order: the aggregate root; its operations return a new *Order and never mutate the receiver
//   - Product: a line item whose status is computed from its counters
//   - Status, ProductStatus, Priority: closed vocabularies with wire names
//   - DeriveStatus: an ordered first-match-wins rule list
//   - HistoryEntry: one audit record per successful operation
//
// Key business rules:
//   - 0 <= delivered <= dispatched <= allocated <= quantity for every line item
//   - Only pending orders can be approved or rejected
//   - Rejecting cancels every line item; counters are kept
//   - A failed operation changes nothing and records nothing
package order
