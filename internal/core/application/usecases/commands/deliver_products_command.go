package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDeliverProductsCommandIsNotConstructed = errors.New(
		"DeliverProductsCommand must be created via NewDeliverProductsCommand constructor",
	)
)

type DeliverProductsCommand struct { //nolint:recvcheck //using for validation
	line productLine

	guard guard.ConstructorGuard
}

func NewDeliverProductsCommand(orderID, productID kernel.UUID, quantity int, user string) (DeliverProductsCommand, error) {
	line, err := newProductLine(orderID, productID, quantity, user)
	if err != nil {
		return DeliverProductsCommand{}, err
	}

	return DeliverProductsCommand{line: line, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverProductsCommand) Validate() error {
	return c.guard.Validate(ErrDeliverProductsCommandIsNotConstructed)
}

func (c DeliverProductsCommand) OrderID() kernel.UUID {
	return c.line.orderID
}

func (c DeliverProductsCommand) ProductID() kernel.UUID {
	return c.line.productID
}

func (c DeliverProductsCommand) Quantity() int {
	return c.line.quantity
}

func (c DeliverProductsCommand) User() string {
	return c.line.user
}
