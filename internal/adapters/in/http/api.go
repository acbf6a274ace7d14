package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Request and response bodies of the REST API; openapi.json is the source of truth.

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health defines model for the liveness probe.
type Health struct {
	Status string `json:"status"`
}

// NewProduct defines model for NewProduct.
type NewProduct struct {
	Name     string `json:"name"`
	Sku      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Customer        string       `json:"customer"`
	Reference       string       `json:"reference,omitempty"`
	OrderDate       time.Time    `json:"orderDate"`
	DeliveryDate    *time.Time   `json:"deliveryDate,omitempty"`
	Priority        string       `json:"priority"`
	ShippingAddress string       `json:"shippingAddress,omitempty"`
	Carrier         string       `json:"carrier,omitempty"`
	TrackingNumber  string       `json:"trackingNumber,omitempty"`
	Remarks         string       `json:"remarks,omitempty"`
	Products        []NewProduct `json:"products"`
}

// QuantityRequest defines model for QuantityRequest.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Stamp defines model for Stamp.
type Stamp struct {
	By string    `json:"by"`
	At time.Time `json:"at"`
}

// Product defines model for Product.
type Product struct {
	Id                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Sku                string    `json:"sku"`
	Quantity           int       `json:"quantity"`
	AllocatedQuantity  int       `json:"allocatedQuantity"`
	DispatchedQuantity int       `json:"dispatchedQuantity"`
	DeliveredQuantity  int       `json:"deliveredQuantity"`
	Status             string    `json:"status"`
	NextStatuses       []string  `json:"nextStatuses"`
	Allocated          *Stamp    `json:"allocated,omitempty"`
	Dispatched         *Stamp    `json:"dispatched,omitempty"`
	Delivered          *Stamp    `json:"delivered,omitempty"`
}

// HistoryEntry defines model for HistoryEntry.
type HistoryEntry struct {
	At     time.Time `json:"at"`
	Status string    `json:"status"`
	User   string    `json:"user"`
	Note   string    `json:"note"`
}

// Order defines model for Order.
type Order struct {
	Id              uuid.UUID      `json:"id"`
	Customer        string         `json:"customer"`
	Reference       string         `json:"reference,omitempty"`
	OrderDate       time.Time      `json:"orderDate"`
	DeliveryDate    *time.Time     `json:"deliveryDate,omitempty"`
	Priority        string         `json:"priority"`
	ShippingAddress string         `json:"shippingAddress,omitempty"`
	Carrier         string         `json:"carrier,omitempty"`
	TrackingNumber  string         `json:"trackingNumber,omitempty"`
	Remarks         string         `json:"remarks,omitempty"`
	Status          string         `json:"status"`
	Created         Stamp          `json:"created"`
	Approved        *Stamp         `json:"approved,omitempty"`
	Version         int            `json:"version"`
	Products        []Product      `json:"products"`
	History         []HistoryEntry `json:"history"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	Id           uuid.UUID `json:"id"`
	Customer     string    `json:"customer"`
	Reference    string    `json:"reference,omitempty"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
	ProductCount int       `json:"productCount"`
}

func toStampPtr(s order.Stamp) *Stamp {
	if s.IsZero() {
		return nil
	}
	return &Stamp{By: s.By(), At: s.At()}
}

func toOrder(o *order.Order) Order {
	details := o.Details()

	resp := Order{
		Id:              o.ID().Bytes(),
		Customer:        details.Customer,
		Reference:       details.Reference,
		OrderDate:       details.OrderDate,
		Priority:        details.Priority.String(),
		ShippingAddress: details.ShippingAddress,
		Carrier:         details.Carrier,
		TrackingNumber:  details.TrackingNumber,
		Remarks:         details.Remarks,
		Status:          o.Status().String(),
		Created:         Stamp{By: o.Created().By(), At: o.Created().At()},
		Approved:        toStampPtr(o.Approved()),
		Version:         o.Version(),
	}
	if !details.DeliveryDate.IsZero() {
		deliveryDate := details.DeliveryDate
		resp.DeliveryDate = &deliveryDate
	}

	products := o.Products()
	resp.Products = make([]Product, len(products))
	for i, p := range products {
		resp.Products[i] = Product{
			Id:                 p.ID().Bytes(),
			Name:               p.Name(),
			Sku:                p.SKU(),
			Quantity:           p.Quantity(),
			AllocatedQuantity:  p.AllocatedQuantity(),
			DispatchedQuantity: p.DispatchedQuantity(),
			DeliveredQuantity:  p.DeliveredQuantity(),
			Status:             p.Status().String(),
			NextStatuses:       nextStatuses(p.Status()),
			Allocated:          toStampPtr(p.Allocation()),
			Dispatched:         toStampPtr(p.Dispatch()),
			Delivered:          toStampPtr(p.Delivery()),
		}
	}

	history := o.History()
	resp.History = make([]HistoryEntry, len(history))
	for i, h := range history {
		resp.History[i] = HistoryEntry{
			At:     h.At(),
			Status: h.Status().String(),
			User:   h.User(),
			Note:   h.Note(),
		}
	}

	return resp
}

func toOrderSummary(row queries.GetOrdersByStatusQueryResponse) OrderSummary {
	return OrderSummary{
		Id:           row.ID.Bytes(),
		Customer:     row.Customer,
		Reference:    row.Reference,
		Priority:     row.Priority.String(),
		Status:       row.Status.String(),
		CreatedAt:    row.CreatedAt,
		CreatedBy:    row.CreatedBy,
		ProductCount: row.ProductCount,
	}
}

func nextStatuses(current order.ProductStatus) []string {
	next := order.Transitions(current)
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = s.String()
	}
	return names
}
