package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// AllocateInventoryCommandHandler reserves units of one line item.
type AllocateInventoryCommandHandler struct {
	runner mutationRunner
}

func NewAllocateInventoryCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	engine services.FulfillmentEngine,
	logger *zap.Logger,
) AllocateInventoryCommandHandler {
	return AllocateInventoryCommandHandler{
		runner: newMutationRunner(uowFactory, locker, publisher, engine, logger),
	}
}

func (h AllocateInventoryCommandHandler) Handle(ctx context.Context, cmd AllocateInventoryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(engine services.FulfillmentEngine, current *order.Order) (*order.Order, error) {
			return engine.AllocateInventory(current, cmd.ProductID(), cmd.Quantity(), cmd.User())
		})
}
