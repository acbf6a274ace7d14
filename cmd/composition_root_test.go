package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompositionRoot_BuildsHandlers(t *testing.T) {
	app := NewCompositionRoot(Config{Backlog: BacklogConfig{Schedule: "0 * * * * *"}}, nil, nil, nil, zap.NewNop())

	assert.NotPanics(t, func() {
		app.CreateCreateOrderCommandHandler()
		app.CreateApproveOrderCommandHandler()
		app.CreateRejectOrderCommandHandler()
		app.CreateAllocateInventoryCommandHandler()
		app.CreateDispatchProductsCommandHandler()
		app.CreateDeliverProductsCommandHandler()
		app.CreateGetOrderQueryHandler()
		app.CreateGetOrdersByStatusQueryHandler()
	})
	require.NotNil(t, app.CreateApprovalBacklogJob())
}

func TestFuncOrderUoWFactory_CreatesFreshUnits(t *testing.T) {
	app := NewCompositionRoot(Config{}, nil, nil, nil, zap.NewNop())
	factory := app.orderUoWFactory()

	first := factory.Create()
	second := factory.Create()

	require.NotNil(t, first)
	assert.NotSame(t, first, second)
}
