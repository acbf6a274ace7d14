package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Details holds the descriptive order attributes. None of them take part in the
// fulfillment state machine.
type Details struct {
	Customer        string
	Reference       string
	OrderDate       time.Time
	DeliveryDate    time.Time // zero when not requested
	Priority        Priority
	ShippingAddress string
	Carrier         string
	TrackingNumber  string
	Remarks         string
}

// Validate checks the attributes required to accept an order.
func (d Details) Validate() error {
	var dateErr error
	if !d.DeliveryDate.IsZero() && !d.OrderDate.IsZero() && d.DeliveryDate.Before(d.OrderDate) {
		dateErr = errs.NewValueIsInvalidErrorWithCause(
			"delivery date",
			fmt.Errorf("%s is before order date %s",
				d.DeliveryDate.Format(time.DateOnly), d.OrderDate.Format(time.DateOnly)),
		)
	}

	var customerErr error
	if d.Customer == "" {
		customerErr = errs.NewValueIsRequiredError("customer")
	}

	return errors.Join(
		customerErr,
		validateTime("order date", d.OrderDate),
		d.Priority.Validate(),
		dateErr,
	)
}
