package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// productLine carries the arguments shared by the per-line-item commands.
type productLine struct {
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int
	user      string
}

func newProductLine(orderID, productID kernel.UUID, quantity int, user string) (productLine, error) {
	var userErr error
	if user == "" {
		userErr = errs.NewValueIsRequiredError("user")
	}

	if err := errors.Join(orderID.Validate(), productID.Validate(), userErr); err != nil {
		return productLine{}, err
	}

	return productLine{
		orderID:   orderID,
		productID: productID,
		quantity:  quantity,
		user:      user,
	}, nil
}
