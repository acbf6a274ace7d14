package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// RejectOrderCommandHandler cancels a pending order and all of its line items.
type RejectOrderCommandHandler struct {
	runner mutationRunner
}

func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	engine services.FulfillmentEngine,
	logger *zap.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		runner: newMutationRunner(uowFactory, locker, publisher, engine, logger),
	}
}

// Handle returns the committed order. Orders that are not pending approval fail
// with errs.ErrInvalidState.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(engine services.FulfillmentEngine, current *order.Order) (*order.Order, error) {
			return engine.RejectOrder(current, cmd.User())
		})
}
