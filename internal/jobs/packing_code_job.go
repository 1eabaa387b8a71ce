package jobs

import (
	"context"
	"log/slog"

	"shopfloor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EveryMinute fires at second zero of every minute.
const EveryMinute = "0 * * * * *"

// PackingCodeRetrier mints codes for packed parts that have none yet.
type PackingCodeRetrier interface {
	Handle(ctx context.Context, command commands.RetryPackingCodesCommand) (int, error)
}

// PackingCodeJob re-mints packing codes whose first render failed.
type PackingCodeJob struct {
	handler   PackingCodeRetrier
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPackingCodeJob creates the packing-code job. An empty schedule runs it every
// minute; a non-positive batch size falls back to DefaultRetryBatchSize.
func NewPackingCodeJob(handler PackingCodeRetrier, schedule string, batchSize int, logger *slog.Logger) *PackingCodeJob {
	if schedule == "" {
		schedule = EveryMinute
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRetryBatchSize
	}
	return &PackingCodeJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "packing_code_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *PackingCodeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Packing code job started", "schedule", j.schedule)
	return nil
}

// Run performs one retry pass.
func (j *PackingCodeJob) Run(ctx context.Context) {
	cmd, err := commands.NewRetryPackingCodesCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Packing code job misconfigured", "error", err)
		return
	}

	minted, err := j.handler.Handle(ctx, cmd)
	if minted > 0 {
		j.logger.InfoContext(ctx, "Packing codes minted", "count", minted)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Packing code job failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *PackingCodeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Packing code job stopped")
}
