// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field, so schedules
// look like "0 */5 * * * *" (every five minutes).
//
// # Available Jobs
//
// ApprovalBacklogJob - lists orders still pending approval and logs a warning for
// each one older than the configured threshold.
//
// # Usage
//
//	backlog := jobs.NewApprovalBacklogJob(getOrdersByStatusHandler, "0 */5 * * * *", 4*time.Hour, time.Now, logger)
//	jobManager := jobs.NewJobManager().Add("approval backlog", backlog)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick runs as scheduled. A failed start stops
// any jobs already running.
package jobs
