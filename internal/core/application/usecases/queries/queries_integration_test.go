package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
	byStatus  queries.GetOrdersByStatusQueryHandler
	getOrder  queries.GetOrderQueryHandler
	base      time.Time
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(orderrepo.Migrate(db))

	suite.repo = orderrepo.NewGormOrderRepository(db)
	suite.byStatus = queries.NewGetOrdersByStatusQueryHandler(db)
	suite.getOrder = queries.NewGetOrderQueryHandler(suite.repo)
	suite.base = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_status_history, order_products, orders").Error
	suite.Require().NoError(err)
}

// addOrder stores a pending order created offset after the base time.
func (suite *OrderQueriesTestSuite) addOrder(customer string, offset time.Duration, quantities ...int) *order.Order {
	products := make([]order.Product, 0, len(quantities))
	for _, q := range quantities {
		p, err := order.NewProduct(kernel.NewUUID(), "Widget", "W-1", q)
		suite.Require().NoError(err)
		products = append(products, p)
	}

	at := suite.base.Add(offset)
	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		Customer:  customer,
		Reference: "REF-" + customer,
		OrderDate: at,
		Priority:  order.PriorityLow,
	}, products, "alice", at)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.Add(context.Background(), o))
	return o
}

func (suite *OrderQueriesTestSuite) approve(o *order.Order) {
	approved, err := o.Approve("bob", suite.base.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(context.Background(), approved))
}

func (suite *OrderQueriesTestSuite) TestGetOrdersByStatus_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOrdersByStatusQuery(order.Unknown)
	suite.Require().NoError(err)

	result, err := suite.byStatus.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *OrderQueriesTestSuite) TestGetOrdersByStatus_FiltersAndSortsByCreation() {
	later := suite.addOrder("Later", 2*time.Hour, 1)
	earlier := suite.addOrder("Earlier", time.Hour, 3, 4)
	approved := suite.addOrder("Approved", 0, 5)
	suite.approve(approved)

	query, err := queries.NewGetOrdersByStatusQuery(order.PendingApproval)
	suite.Require().NoError(err)

	result, err := suite.byStatus.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(earlier.ID(), result[0].ID)
	suite.Equal("Earlier", result[0].Customer)
	suite.Equal("REF-Earlier", result[0].Reference)
	suite.Equal(order.PriorityLow, result[0].Priority)
	suite.Equal(order.PendingApproval, result[0].Status)
	suite.Equal(2, result[0].ProductCount)
	suite.Equal("alice", result[0].CreatedBy)
	suite.True(suite.base.Add(time.Hour).Equal(result[0].CreatedAt))

	suite.Equal(later.ID(), result[1].ID)
	suite.Equal(1, result[1].ProductCount)
}

func (suite *OrderQueriesTestSuite) TestGetOrdersByStatus_Unfiltered_ReturnsAll() {
	suite.addOrder("A", 0, 1)
	b := suite.addOrder("B", time.Minute, 1)
	suite.approve(b)

	query, err := queries.NewGetOrdersByStatusQuery(order.Unknown)
	suite.Require().NoError(err)

	result, err := suite.byStatus.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(order.PendingApproval, result[0].Status)
	suite.Equal(order.Approved, result[1].Status)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_ReturnsAggregateWithHistory() {
	o := suite.addOrder("ACME", 0, 10)
	suite.approve(o)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.getOrder.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(order.Approved, result.Status())
	suite.Len(result.Products(), 1)
	suite.Len(result.History(), 2)
	suite.Equal(1, result.Version())
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getOrder.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
