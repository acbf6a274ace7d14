// Package kernel provides the shared domain primitives of the fulfillment service.
//
// The package includes:
//   - UUID: the identifier value object for orders and order line items
//
// Kernel values are immutable and validated on construction; the zero value of
// each type is invalid and rejected by its Validate method.
package kernel
