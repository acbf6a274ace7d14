package cmd

import (
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot builds the application's handlers from its infrastructure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	clock      services.Clock
	logger     *zap.Logger
}

// NewCompositionRoot wires the shared dependencies. publisher may be nil, in which
// case committed changes are not announced.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		publisher:  publisher,
		clock:      func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) engine() services.FulfillmentEngine {
	return services.NewFulfillmentEngine(c.clock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.orderUoWFactory(), c.locker, c.publisher, c.engine(), c.logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.locker, c.publisher, c.engine(), c.logger)
}

func (c *CompositionRoot) CreateAllocateInventoryCommandHandler() commands.AllocateInventoryCommandHandler {
	return commands.NewAllocateInventoryCommandHandler(c.orderUoWFactory(), c.locker, c.publisher, c.engine(), c.logger)
}

func (c *CompositionRoot) CreateDispatchProductsCommandHandler() commands.DispatchProductsCommandHandler {
	return commands.NewDispatchProductsCommandHandler(c.orderUoWFactory(), c.locker, c.publisher, c.engine(), c.logger)
}

func (c *CompositionRoot) CreateDeliverProductsCommandHandler() commands.DeliverProductsCommandHandler {
	return commands.NewDeliverProductsCommandHandler(c.orderUoWFactory(), c.locker, c.publisher, c.engine(), c.logger)
}

// CreateGetOrderQueryHandler reads whole aggregates outside of a transaction.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateApprovalBacklogJob() *jobs.ApprovalBacklogJob {
	return jobs.NewApprovalBacklogJob(
		c.CreateGetOrdersByStatusQueryHandler(),
		c.config.Backlog.Schedule,
		c.config.Backlog.Threshold,
		c.clock,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
