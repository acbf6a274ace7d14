package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ordersSummarySelect = `
	SELECT
		o.id,
		o.customer,
		o.reference,
		o.priority,
		o.status,
		o.created_at,
		o.created_by,
		COUNT(p.id)
	FROM orders o
	LEFT JOIN order_products p ON p.order_id = o.id
`

// GetOrdersByStatusQueryHandler reads order summaries straight from the database,
// bypassing the aggregate.
//
// Example:
//
//	handler := NewGetOrdersByStatusQueryHandler(db)
//	query, _ := NewGetOrdersByStatusQuery(order.PendingApproval)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order summary queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle returns matching orders sorted by creation time, then id. The result is never nil.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		rows *sql.Rows
		err  error
	)
	db := h.db.WithContext(ctx)
	if query.IsFiltered() {
		rows, err = db.Raw(ordersSummarySelect+`
		WHERE o.status = ?
		GROUP BY o.id
		ORDER BY o.created_at, o.id
	`, int(query.Status())).Rows()
	} else {
		rows, err = db.Raw(ordersSummarySelect + `
		GROUP BY o.id
		ORDER BY o.created_at, o.id
	`).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersByStatusQueryResponse, 0)
	for rows.Next() {
		var (
			resp             GetOrdersByStatusQueryResponse
			id               uuid.UUID
			priority, status int
		)

		err = rows.Scan(
			&id,
			&resp.Customer,
			&resp.Reference,
			&priority,
			&status,
			&resp.CreatedAt,
			&resp.CreatedBy,
			&resp.ProductCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		resp.Priority = order.Priority(priority)
		if err = resp.Priority.Validate(); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		if err = resp.Status.Validate(); err != nil {
			return nil, err
		}
		resp.CreatedAt = resp.CreatedAt.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
