package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApproveOrderCommand(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewApproveOrderCommand(id, "bob")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "bob", cmd.User())

	_, err = commands.NewApproveOrderCommand(kernel.UUID{}, "")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewRejectOrderCommand_UserRequired(t *testing.T) {
	_, err := commands.NewRejectOrderCommand(kernel.NewUUID(), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewAllocateInventoryCommand(t *testing.T) {
	orderID, productID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewAllocateInventoryCommand(orderID, productID, 7, "dave")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, productID, cmd.ProductID())
	assert.Equal(t, 7, cmd.Quantity())
	assert.Equal(t, "dave", cmd.User())
}

// Quantity bounds are enforced by the order, so non-positive quantities still build a command.
func TestNewDispatchProductsCommand_KeepsQuantityAsIs(t *testing.T) {
	cmd, err := commands.NewDispatchProductsCommand(kernel.NewUUID(), kernel.NewUUID(), 0, "erin")
	require.NoError(t, err)
	assert.Equal(t, 0, cmd.Quantity())
}

func TestNewDeliverProductsCommand_InvalidIDs(t *testing.T) {
	_, err := commands.NewDeliverProductsCommand(kernel.UUID{}, kernel.UUID{}, 1, "frank")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
