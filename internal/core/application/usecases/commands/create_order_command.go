package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// ProductLine is one requested line item of a new order.
type ProductLine struct {
	Name     string
	SKU      string
	Quantity int
}

// CreateOrderCommand represents a request to register a new order awaiting approval.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, details, []ProductLine{{"Widget", "W-1", 10}}, "alice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	details  order.Details
	products []ProductLine
	user     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Attribute rules (customer,
// priority, dates, quantities) are enforced again by the Order aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	details order.Details,
	products []ProductLine,
	user string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
		cmd.setProducts(products),
		cmd.setUser(user),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

// Products returns a copy of the requested line items.
func (c CreateOrderCommand) Products() []ProductLine {
	return append([]ProductLine(nil), c.products...)
}

func (c CreateOrderCommand) User() string {
	return c.user
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}

func (c *CreateOrderCommand) setProducts(products []ProductLine) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	for i, p := range products {
		if p.Name == "" || p.SKU == "" {
			return errs.NewValueIsRequiredErrorWithCause("products",
				fmt.Errorf("line %d: name and sku are required", i+1))
		}
		if p.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("line %d: %d is not greater than 0", i+1, p.Quantity))
		}
	}

	c.products = append([]ProductLine(nil), products...)
	return nil
}

func (c *CreateOrderCommand) setUser(user string) error {
	if user == "" {
		return errs.NewValueIsRequiredError("user")
	}
	c.user = user
	return nil
}
