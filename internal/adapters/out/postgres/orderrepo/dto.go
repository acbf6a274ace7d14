// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
//
// An order is stored across three tables:
//   - orders: descriptive attributes, status, audit stamps and the optimistic version
//   - order_products: one row per line item with its counters and stamps
//   - order_status_history: the append-only audit trail, ordered by seq
package orderrepo

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Customer        string    `gorm:"not null"`
	Reference       string
	OrderDate       time.Time `gorm:"not null"`
	DeliveryDate    *time.Time
	Priority        int `gorm:"not null"`
	ShippingAddress string
	Carrier         string
	TrackingNumber  string
	Remarks         string
	Status          int       `gorm:"not null;index"`
	CreatedBy       string    `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null;index"`
	ApprovedBy      *string
	ApprovedAt      *time.Time
	Version         int `gorm:"not null;default:0"`

	Products []ProductDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History  []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ProductDTO represents one order line item.
type ProductDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position     int       `gorm:"not null"`
	Name         string    `gorm:"not null"`
	SKU          string    `gorm:"column:sku;not null"`
	Quantity     int       `gorm:"not null"`
	Allocated    int       `gorm:"not null"`
	Dispatched   int       `gorm:"not null"`
	Delivered    int       `gorm:"not null"`
	Status       int       `gorm:"not null"`
	AllocatedBy  *string
	AllocatedAt  *time.Time
	DispatchedBy *string
	DispatchedAt *time.Time
	DeliveredBy  *string
	DeliveredAt  *time.Time
}

func (ProductDTO) TableName() string {
	return "order_products"
}

// HistoryDTO represents one audit trail entry. Rows are inserted once and never updated.
type HistoryDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	ChangedAt time.Time `gorm:"not null"`
	Status    int       `gorm:"not null"`
	ChangedBy string    `gorm:"not null"`
	Note      string
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation, including
// all line items and history entries.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	details := aggregate.Details()

	dto := OrderDTO{
		ID:              orderID,
		Customer:        details.Customer,
		Reference:       details.Reference,
		OrderDate:       details.OrderDate,
		DeliveryDate:    timePtr(details.DeliveryDate),
		Priority:        int(details.Priority),
		ShippingAddress: details.ShippingAddress,
		Carrier:         details.Carrier,
		TrackingNumber:  details.TrackingNumber,
		Remarks:         details.Remarks,
		Status:          int(aggregate.Status()),
		CreatedBy:       aggregate.Created().By(),
		CreatedAt:       aggregate.Created().At(),
		Version:         aggregate.Version(),
	}
	dto.ApprovedBy, dto.ApprovedAt = stampToColumns(aggregate.Approved())

	for i, p := range aggregate.Products() {
		dto.Products = append(dto.Products, productFromDomain(orderID, i, p))
	}

	for i, h := range aggregate.History() {
		dto.History = append(dto.History, historyFromDomain(orderID, i, h))
	}

	return dto
}

func productFromDomain(orderID uuid.UUID, position int, p order.Product) ProductDTO {
	dto := ProductDTO{
		OrderID:    orderID,
		ID:         p.ID().Bytes(),
		Position:   position,
		Name:       p.Name(),
		SKU:        p.SKU(),
		Quantity:   p.Quantity(),
		Allocated:  p.AllocatedQuantity(),
		Dispatched: p.DispatchedQuantity(),
		Delivered:  p.DeliveredQuantity(),
		Status:     int(p.Status()),
	}
	dto.AllocatedBy, dto.AllocatedAt = stampToColumns(p.Allocation())
	dto.DispatchedBy, dto.DispatchedAt = stampToColumns(p.Dispatch())
	dto.DeliveredBy, dto.DeliveredAt = stampToColumns(p.Delivery())
	return dto
}

func historyFromDomain(orderID uuid.UUID, seq int, h order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		OrderID:   orderID,
		Seq:       seq,
		ChangedAt: h.At(),
		Status:    int(h.Status()),
		ChangedBy: h.User(),
		Note:      h.Note(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
// Products and History must be loaded and sorted by Position and Seq.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	details := order.Details{
		Customer:        dto.Customer,
		Reference:       dto.Reference,
		OrderDate:       dto.OrderDate.UTC(),
		Priority:        order.Priority(dto.Priority),
		ShippingAddress: dto.ShippingAddress,
		Carrier:         dto.Carrier,
		TrackingNumber:  dto.TrackingNumber,
		Remarks:         dto.Remarks,
	}
	if dto.DeliveryDate != nil {
		details.DeliveryDate = dto.DeliveryDate.UTC()
	}

	products := make([]order.Product, 0, len(dto.Products))
	for _, p := range dto.Products {
		product, productErr := productToDomain(p)
		if productErr != nil {
			return nil, productErr
		}
		products = append(products, product)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, entryErr := order.NewHistoryEntry(h.ChangedAt.UTC(), order.Status(h.Status), h.ChangedBy, h.Note)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	created, err := order.NewStamp(dto.CreatedBy, dto.CreatedAt.UTC())
	if err != nil {
		return nil, err
	}

	approved, err := stampFromColumns(dto.ApprovedBy, dto.ApprovedAt)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, details, order.Status(dto.Status), products, history, created, approved, dto.Version)
}

func productToDomain(dto ProductDTO) (order.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Product{}, err
	}

	allocation, allocErr := stampFromColumns(dto.AllocatedBy, dto.AllocatedAt)
	dispatch, dispatchErr := stampFromColumns(dto.DispatchedBy, dto.DispatchedAt)
	delivery, deliveryErr := stampFromColumns(dto.DeliveredBy, dto.DeliveredAt)
	if err = errors.Join(allocErr, dispatchErr, deliveryErr); err != nil {
		return order.Product{}, err
	}

	return order.RestoreProduct(
		id, dto.Name, dto.SKU,
		dto.Quantity, dto.Allocated, dto.Dispatched, dto.Delivered,
		order.ProductStatus(dto.Status),
		allocation, dispatch, delivery,
	)
}

func stampToColumns(s order.Stamp) (*string, *time.Time) {
	if s.IsZero() {
		return nil, nil
	}
	by, at := s.By(), s.At()
	return &by, &at
}

func stampFromColumns(by *string, at *time.Time) (order.Stamp, error) {
	if by == nil || at == nil {
		return order.Stamp{}, nil
	}
	return order.NewStamp(*by, at.UTC())
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
