package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PendingOrdersReader lists order summaries by status.
type PendingOrdersReader interface {
	Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.GetOrdersByStatusQueryResponse, error)
}

// ApprovalBacklogJob reports orders that have been waiting for approval for longer
// than a threshold. It only logs; it never changes orders.
type ApprovalBacklogJob struct {
	reader    PendingOrdersReader
	schedule  string
	threshold time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewApprovalBacklogJob creates the job. schedule is a six-field cron expression
// (seconds first).
func NewApprovalBacklogJob(
	reader PendingOrdersReader,
	schedule string,
	threshold time.Duration,
	now func() time.Time,
	logger *zap.Logger,
) *ApprovalBacklogJob {
	return &ApprovalBacklogJob{
		reader:    reader,
		schedule:  schedule,
		threshold: threshold,
		now:       now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "approval_backlog_job")),
	}
}

// Start schedules the job.
func (j *ApprovalBacklogJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, runErr := j.Run(context.Background()); runErr != nil {
			j.logger.Error("Approval backlog job failed", zap.Error(runErr))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Approval backlog job started",
		zap.String("schedule", j.schedule),
		zap.Duration("threshold", j.threshold),
	)
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (j *ApprovalBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Approval backlog job stopped")
}

// Run performs one check and returns the number of overdue orders.
func (j *ApprovalBacklogJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewGetOrdersByStatusQuery(order.PendingApproval)
	if err != nil {
		return 0, err
	}

	pending, err := j.reader.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	now := j.now()
	overdue := 0
	for _, o := range pending {
		waiting := now.Sub(o.CreatedAt)
		if waiting <= j.threshold {
			// sorted oldest first
			break
		}
		overdue++
		j.logger.Warn("Order is waiting for approval",
			zap.String("orderId", o.ID.String()),
			zap.String("customer", o.Customer),
			zap.String("priority", o.Priority.String()),
			zap.Duration("waiting", waiting),
		)
	}

	if overdue > 0 {
		j.logger.Warn("Approval backlog",
			zap.Int("overdue", overdue),
			zap.Int("pending", len(pending)),
		)
	}

	return overdue, nil
}
