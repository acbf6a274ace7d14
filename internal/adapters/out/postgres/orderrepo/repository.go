package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its line items and history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order guarded by its version.
//
// Line item rows are upserted; history rows past the stored count are inserted.
// Callers run Update inside a unit of work so the three statements commit together.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"customer":         dto.Customer,
			"reference":        dto.Reference,
			"order_date":       dto.OrderDate,
			"delivery_date":    dto.DeliveryDate,
			"priority":         dto.Priority,
			"shipping_address": dto.ShippingAddress,
			"carrier":          dto.Carrier,
			"tracking_number":  dto.TrackingNumber,
			"remarks":          dto.Remarks,
			"status":           dto.Status,
			"approved_by":      dto.ApprovedBy,
			"approved_at":      dto.ApprovedAt,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Products).Error; err != nil {
		return err
	}

	return r.appendHistory(ctx, dto)
}

// Get retrieves an order by ID together with its line items and history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}

func (r *GormOrderRepository) appendHistory(ctx context.Context, dto OrderDTO) error {
	var stored int64
	if err := r.db.WithContext(ctx).
		Model(&HistoryDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&stored).Error; err != nil {
		return err
	}

	if int(stored) > len(dto.History) {
		return errs.NewVersionIsInvalidErrorWithCause("order",
			fmt.Errorf("stored history has %d entries, aggregate has %d", stored, len(dto.History)))
	}

	fresh := dto.History[stored:]
	if len(fresh) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&fresh).Error
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return errs.NewVersionIsInvalidErrorWithCause("order",
		fmt.Errorf("version %d is stale", aggregate.Version()))
}
