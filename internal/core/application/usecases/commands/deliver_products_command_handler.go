package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// DeliverProductsCommandHandler confirms delivery of dispatched units of one line item.
type DeliverProductsCommandHandler struct {
	runner mutationRunner
}

func NewDeliverProductsCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	engine services.FulfillmentEngine,
	logger *zap.Logger,
) DeliverProductsCommandHandler {
	return DeliverProductsCommandHandler{
		runner: newMutationRunner(uowFactory, locker, publisher, engine, logger),
	}
}

func (h DeliverProductsCommandHandler) Handle(ctx context.Context, cmd DeliverProductsCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(engine services.FulfillmentEngine, current *order.Order) (*order.Order, error) {
			return engine.DeliverProducts(current, cmd.ProductID(), cmd.Quantity(), cmd.User())
		})
}
