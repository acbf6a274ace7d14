package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDispatchProductsCommandIsNotConstructed = errors.New(
		"DispatchProductsCommand must be created via NewDispatchProductsCommand constructor",
	)
)

// DispatchProductsCommand ships allocated units of one line item.
type DispatchProductsCommand struct { //nolint:recvcheck //using for validation
	line productLine

	guard guard.ConstructorGuard
}

func NewDispatchProductsCommand(orderID, productID kernel.UUID, quantity int, user string) (DispatchProductsCommand, error) {
	line, err := newProductLine(orderID, productID, quantity, user)
	if err != nil {
		return DispatchProductsCommand{}, err
	}

	return DispatchProductsCommand{line: line, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchProductsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchProductsCommandIsNotConstructed)
}

func (c DispatchProductsCommand) OrderID() kernel.UUID {
	return c.line.orderID
}

func (c DispatchProductsCommand) ProductID() kernel.UUID {
	return c.line.productID
}

func (c DispatchProductsCommand) Quantity() int {
	return c.line.quantity
}

func (c DispatchProductsCommand) User() string {
	return c.line.user
}
