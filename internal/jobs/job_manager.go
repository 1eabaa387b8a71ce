package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions (with seconds) of the background jobs.
type Schedules struct {
	PackingCodes     string
	DeliverySweep    string
	PackingCodeBatch int
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	packingCodeJob   *PackingCodeJob
	deliverySweepJob *DeliverySweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	retrier PackingCodeRetrier,
	sweeper DeliverySweeper,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		packingCodeJob:   NewPackingCodeJob(retrier, schedules.PackingCodes, schedules.PackingCodeBatch, logger),
		deliverySweepJob: NewDeliverySweepJob(sweeper, schedules.DeliverySweep, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.packingCodeJob.Start(); err != nil {
		return fmt.Errorf("failed to start packing code job: %w", err)
	}

	if err := jm.deliverySweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.packingCodeJob.Stop()
		return fmt.Errorf("failed to start delivery sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliverySweepJob.Stop()
	jm.packingCodeJob.Stop()
}
