// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. TrackingRefreshJob - Runs every five minutes to advance in-flight order
// statuses from the carrier API's tracking states
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshTrackingHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Per-order tracking failures are handled inside the command: a gateway
// error skips that order and the run continues
// - Run-level failures (order lookup, persistence) are logged here
// - Failed job starts will stop any already running jobs
package jobs
