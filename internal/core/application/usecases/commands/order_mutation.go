package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// mutation applies one engine operation to a loaded order.
type mutation func(engine services.FulfillmentEngine, current *order.Order) (*order.Order, error)

// mutationRunner executes state-changing operations on existing orders:
//
//	lock -> begin -> get -> apply -> update -> commit -> unlock -> publish
//
// The per-order lock keeps concurrent writers from interleaving read-modify-write
// cycles; the repository version check catches anything that slips past it, e.g.
// a lock that expired mid-operation.
type mutationRunner struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	engine     services.FulfillmentEngine
	logger     *zap.Logger
}

func newMutationRunner(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	engine services.FulfillmentEngine,
	logger *zap.Logger,
) mutationRunner {
	return mutationRunner{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		engine:     engine,
		logger:     logger,
	}
}

// run returns the committed order with its stored version.
func (r mutationRunner) run(ctx context.Context, orderID kernel.UUID, apply mutation) (*order.Order, error) {
	unlock, err := r.locker.Lock(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := r.apply(ctx, orderID, apply)

	if unlockErr := unlock(context.WithoutCancel(ctx)); unlockErr != nil {
		r.logger.Warn("failed to release order lock",
			zap.String("orderId", orderID.String()),
			zap.Error(unlockErr),
		)
	}

	if err != nil {
		return nil, err
	}

	publishStatusChanged(ctx, r.publisher, r.logger, updated)
	return updated, nil
}

func (r mutationRunner) apply(ctx context.Context, orderID kernel.UUID, apply mutation) (*order.Order, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := apply(r.engine, current)
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated.WithVersion(updated.Version() + 1), nil
}

// publishStatusChanged announces a committed change. Delivery is best effort: the
// change is already durable, so a failure is logged and not returned.
func publishStatusChanged(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
	aggregate *order.Order,
) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishStatusChanged(context.WithoutCancel(ctx), aggregate); err != nil {
		logger.Error("failed to publish order status change",
			zap.String("orderId", aggregate.ID().String()),
			zap.String("status", aggregate.Status().String()),
			zap.Error(err),
		)
	}
}
