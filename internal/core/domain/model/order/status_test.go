package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringAndParse(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate())

		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "pending_approval", order.PendingApproval.String())
	assert.Equal(t, "partial_fulfillment", order.PartialFulfillment.String())
	assert.Equal(t, "unknown", order.Unknown.String())

	_, err := order.ParseStatus("shipped")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestProductStatus_StringAndParse(t *testing.T) {
	for _, s := range order.ProductStatuses() {
		require.NoError(t, s.Validate())

		parsed, err := order.ParseProductStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "partially_dispatched", order.ProductPartiallyDispatched.String())
	assert.Equal(t, "unknown", order.ProductUnknown.String())

	_, err := order.ParseProductStatus("lost")
	require.Error(t, err)
	require.Error(t, order.ProductUnknown.Validate())
}

func TestPriority(t *testing.T) {
	for _, name := range []string{"high", "medium", "low"} {
		p, err := order.ParsePriority(name)
		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, name, p.String())
	}

	_, err := order.ParsePriority("urgent")
	require.Error(t, err)
	require.Error(t, order.PriorityUnknown.Validate())
}

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from order.ProductStatus
		to   order.ProductStatus
		want bool
	}{
		{order.ProductPending, order.ProductReady, true},
		{order.ProductPending, order.ProductPartiallyReady, true},
		{order.ProductPending, order.ProductCancelled, true},
		{order.ProductPending, order.ProductDispatched, false},
		{order.ProductReady, order.ProductDispatched, true},
		{order.ProductReady, order.ProductPartiallyDispatched, false},
		{order.ProductPartiallyReady, order.ProductReady, true},
		{order.ProductPartiallyReady, order.ProductPartiallyDispatched, true},
		{order.ProductDispatched, order.ProductDelivered, true},
		{order.ProductPartiallyDispatched, order.ProductDispatched, true},
		{order.ProductPartiallyDispatched, order.ProductPartiallyDelivered, true},
		{order.ProductPartiallyDelivered, order.ProductDelivered, true},
		{order.ProductDelivered, order.ProductCancelled, false},
		{order.ProductCancelled, order.ProductPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, order.IsValidTransition(tt.from, tt.to))
		})
	}

	assert.Empty(t, order.Transitions(order.ProductCancelled))
	assert.Len(t, order.Transitions(order.ProductPending), 3)
}
