package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler registers new orders in pending approval. Line item ids
// are generated here.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	clock      services.Clock
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clock services.Clock,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle persists the new order and announces it once committed.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines := cmd.Products()
	products := make([]order.Product, 0, len(lines))
	for _, line := range lines {
		p, err := order.NewProduct(kernel.NewUUID(), line.Name, line.SKU, line.Quantity)
		if err != nil {
			return err
		}
		products = append(products, p)
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.Details(), products, cmd.User(), h.clock())
	if err != nil {
		return err
	}

	if err = h.save(ctx, created); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, created)
	return nil
}

// save persists the new order in its own transaction; the deferred rollback runs
// before the caller publishes.
func (h CreateOrderCommandHandler) save(ctx context.Context, created *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, created); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
