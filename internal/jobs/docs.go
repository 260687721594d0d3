// Package jobs provides scheduled background tasks for the meal delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderStatusJob runs the order status batch: created orders start, orders in
// progress are delivered, paid delivered orders are closed.
//
// # Usage
//
//	job := jobs.NewOrderStatusJob(advanceHandler, cfg.OrderStatusCron, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with a leading seconds field. The
// default "0 */5 * * * *" runs the batch every five minutes. Overlapping runs
// are skipped.
//
// # Error Handling
//
// Failures of single orders are handled inside the batch. The job logs only a
// batch that could not be loaded at all.
package jobs
