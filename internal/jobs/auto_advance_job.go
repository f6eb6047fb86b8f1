package jobs

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type autoAdvancer interface {
	Handle(ctx context.Context, cmd commands.AutoAdvanceOrdersCommand) (commands.AutoAdvanceResult, error)
}

// resultRecorder receives the outcome of every run; metrics.Registry
// implements it.
type resultRecorder interface {
	RecordAutoAdvance(promoted, skipped, failed int)
}

// AutoAdvanceJob runs the auto-advance batch on a cron schedule. Runs never
// overlap: a tick that fires while the previous batch is still going is
// skipped.
type AutoAdvanceJob struct {
	handler  autoAdvancer
	recorder resultRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	running  sync.Mutex
}

// NewAutoAdvanceJob takes a six-field cron expression (seconds first).
// recorder may be nil.
func NewAutoAdvanceJob(handler autoAdvancer, recorder resultRecorder, schedule string, logger *slog.Logger) *AutoAdvanceJob {
	return &AutoAdvanceJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_advance_job"),
	}
}

func (j *AutoAdvanceJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-advance job started", "schedule", j.schedule)
	return nil
}

// Run executes one batch unless another one is in progress.
func (j *AutoAdvanceJob) Run() {
	if !j.running.TryLock() {
		j.logger.WarnContext(context.Background(), "Previous auto-advance run still in progress, skipping tick")
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()
	result, err := j.handler.Handle(ctx, commands.NewAutoAdvanceOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-advance job failed", "error", err)
		return
	}

	if j.recorder != nil {
		j.recorder.RecordAutoAdvance(result.Promoted, result.Skipped, result.Failed)
	}
}

// Stop waits for a running batch to finish.
func (j *AutoAdvanceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto-advance job stopped")
}
