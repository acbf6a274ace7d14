package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderEventPublisher notifies other systems about committed order changes.
type OrderEventPublisher interface {
	// PublishStatusChanged announces the order's current status and its latest
	// history entry. It is called only after the change has been committed.
	PublishStatusChanged(ctx context.Context, aggregate *order.Order) error
}
