package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockPendingOrdersReader struct{ mock.Mock }

func (m *MockPendingOrdersReader) Handle(
	ctx context.Context,
	query queries.GetOrdersByStatusQuery,
) ([]queries.GetOrdersByStatusQueryResponse, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]queries.GetOrdersByStatusQueryResponse)
	return rows, args.Error(1)
}

var jobNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func pendingSince(customer string, age time.Duration) queries.GetOrdersByStatusQueryResponse {
	return queries.GetOrdersByStatusQueryResponse{
		ID:        kernel.NewUUID(),
		Customer:  customer,
		Priority:  order.PriorityHigh,
		Status:    order.PendingApproval,
		CreatedAt: jobNow.Add(-age),
	}
}

func TestApprovalBacklogJob_Run_WarnsAboutOverdueOrders(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reader := new(MockPendingOrdersReader)
	reader.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrdersByStatusQuery) bool {
		return q.Status() == order.PendingApproval
	})).Return([]queries.GetOrdersByStatusQueryResponse{
		pendingSince("Oldest", 10*time.Hour),
		pendingSince("Old", 5*time.Hour),
		pendingSince("Fresh", time.Hour),
	}, nil).Once()

	job := jobs.NewApprovalBacklogJob(reader, "0 * * * * *", 4*time.Hour,
		func() time.Time { return jobNow }, zap.New(core))

	overdue, err := job.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, overdue)

	warnings := logs.FilterMessage("Order is waiting for approval").AllUntimed()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Oldest", warnings[0].ContextMap()["customer"])
	assert.Equal(t, "approval_backlog_job", warnings[0].ContextMap()["component"])

	summary := logs.FilterMessage("Approval backlog").AllUntimed()
	require.Len(t, summary, 1)
	assert.EqualValues(t, 3, summary[0].ContextMap()["pending"])
	reader.AssertExpectations(t)
}

func TestApprovalBacklogJob_Run_NothingOverdue(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reader := new(MockPendingOrdersReader)
	reader.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetOrdersByStatusQueryResponse{pendingSince("Fresh", time.Minute)}, nil).Once()

	job := jobs.NewApprovalBacklogJob(reader, "0 * * * * *", time.Hour,
		func() time.Time { return jobNow }, zap.New(core))

	overdue, err := job.Run(t.Context())
	require.NoError(t, err)
	assert.Zero(t, overdue)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestApprovalBacklogJob_Run_ReaderError(t *testing.T) {
	reader := new(MockPendingOrdersReader)
	reader.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	job := jobs.NewApprovalBacklogJob(reader, "0 * * * * *", time.Hour,
		func() time.Time { return jobNow }, zap.NewNop())

	_, err := job.Run(t.Context())
	require.Error(t, err)
}

func TestApprovalBacklogJob_Start_InvalidSchedule(t *testing.T) {
	job := jobs.NewApprovalBacklogJob(new(MockPendingOrdersReader), "not a schedule", time.Hour,
		time.Now, zap.NewNop())

	require.Error(t, job.Start())
}
