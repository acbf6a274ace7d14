package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// DispatchProductsCommandHandler ships allocated units of one line item.
type DispatchProductsCommandHandler struct {
	runner mutationRunner
}

func NewDispatchProductsCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	engine services.FulfillmentEngine,
	logger *zap.Logger,
) DispatchProductsCommandHandler {
	return DispatchProductsCommandHandler{
		runner: newMutationRunner(uowFactory, locker, publisher, engine, logger),
	}
}

func (h DispatchProductsCommandHandler) Handle(ctx context.Context, cmd DispatchProductsCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(engine services.FulfillmentEngine, current *order.Order) (*order.Order, error) {
			return engine.DispatchProducts(current, cmd.ProductID(), cmd.Quantity(), cmd.User())
		})
}
