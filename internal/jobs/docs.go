// Package jobs provides the scheduled background work of the fulfillment
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// AutoAdvanceJob runs the auto-advance batch, promoting pending_enrichment
// orders that need no operator input to ready_for_design. Its schedule comes
// from AUTO_ADVANCE_SCHEDULE as a six-field cron expression; an empty value
// disables the job.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&autoAdvanceHandler, metricsRegistry, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch is logged and retried on the next tick. Per-order failures
// are counted by the batch itself and never fail the job.
package jobs
