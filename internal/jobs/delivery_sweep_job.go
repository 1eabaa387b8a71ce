package jobs

import (
	"context"
	"log/slog"

	"shopfloor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliverySweeper runs the completion check for every project with parts in transit.
type DeliverySweeper interface {
	Handle(ctx context.Context, command commands.SweepDeliveriesCommand) ([]commands.ProjectCompletionResult, error)
}

// DeliverySweepJob marks projects installed once all their in-transit parts are confirmed.
type DeliverySweepJob struct {
	handler  DeliverySweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliverySweepJob creates a job on a seconds-precision cron schedule.
// An empty schedule runs it every minute.
func NewDeliverySweepJob(handler DeliverySweeper, schedule string, logger *slog.Logger) *DeliverySweepJob {
	if schedule == "" {
		schedule = EveryMinute
	}
	return &DeliverySweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "delivery_sweep_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *DeliverySweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery sweep job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep.
func (j *DeliverySweepJob) Run(ctx context.Context) {
	results, err := j.handler.Handle(ctx, commands.NewSweepDeliveriesCommand())
	for _, r := range results {
		if r.Advanced {
			j.logger.InfoContext(ctx, "Project parts installed", "project_id", r.ProjectID, "count", r.InTransit)
		}
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery sweep job failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *DeliverySweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery sweep job stopped")
}
