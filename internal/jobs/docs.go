// Package jobs provides scheduled background tasks for the shop floor.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. PackingCodeJob - re-mints packing codes for PACKED parts whose code path is still empty
// 2. DeliverySweepJob - runs the project completion check for every project with parts in transit
//
// # Usage
//
//	jobManager := jobs.NewJobManager(retryHandler, sweepHandler, jobs.Schedules{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and keep their schedule; a failed pass is retried on the next tick.
// Failed job starts stop any already running jobs.
package jobs
