// Package jobs provides scheduled background tasks for the parcel system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the parcel service.
//
// # Available Jobs
//
// 1. OverdueParcelJob - Runs every minute to flag parcels whose expected
// delivery date has passed while they are still moving
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(overdueParcelsHandler, clock, logger)
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
// The overdue job only reads; failures are logged and the next run retries.
package jobs
