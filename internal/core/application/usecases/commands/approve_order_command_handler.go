package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// ApproveOrderCommandHandler moves a pending order to approved.
type ApproveOrderCommandHandler struct {
	runner mutationRunner
}

func NewApproveOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	engine services.FulfillmentEngine,
	logger *zap.Logger,
) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		runner: newMutationRunner(uowFactory, locker, publisher, engine, logger),
	}
}

// Handle returns the committed order. Orders that are not pending approval fail
// with errs.ErrInvalidState.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(engine services.FulfillmentEngine, current *order.Order) (*order.Order, error) {
			return engine.ApproveOrder(current, cmd.User())
		})
}
