package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAllocateInventoryCommandIsNotConstructed = errors.New(
		"AllocateInventoryCommand must be created via NewAllocateInventoryCommand constructor",
	)
)

// AllocateInventoryCommand reserves units of one line item.
//
// Quantity is not range-checked here: the bounds depend on the line item's counters,
// so the engine checks them against the stored order.
type AllocateInventoryCommand struct { //nolint:recvcheck //using for validation
	line productLine

	guard guard.ConstructorGuard
}

func NewAllocateInventoryCommand(orderID, productID kernel.UUID, quantity int, user string) (AllocateInventoryCommand, error) {
	line, err := newProductLine(orderID, productID, quantity, user)
	if err != nil {
		return AllocateInventoryCommand{}, err
	}

	return AllocateInventoryCommand{line: line, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateInventoryCommand) Validate() error {
	return c.guard.Validate(ErrAllocateInventoryCommandIsNotConstructed)
}

func (c AllocateInventoryCommand) OrderID() kernel.UUID {
	return c.line.orderID
}

func (c AllocateInventoryCommand) ProductID() kernel.UUID {
	return c.line.productID
}

func (c AllocateInventoryCommand) Quantity() int {
	return c.line.quantity
}

func (c AllocateInventoryCommand) User() string {
	return c.line.user
}
