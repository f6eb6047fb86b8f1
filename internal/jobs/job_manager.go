package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	autoAdvanceJob *AutoAdvanceJob
	logger         *slog.Logger
}

// NewJobManager wires the auto-advance job when schedule is non-empty.
func NewJobManager(
	autoAdvanceHandler autoAdvancer,
	recorder resultRecorder,
	autoAdvanceSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger}
	if autoAdvanceSchedule != "" {
		jm.autoAdvanceJob = NewAutoAdvanceJob(autoAdvanceHandler, recorder, autoAdvanceSchedule, logger)
	}
	return jm
}

// StartAll starts every configured job. Jobs already started are stopped
// again when a later one fails.
func (jm *JobManager) StartAll() error {
	if jm.autoAdvanceJob == nil {
		jm.logger.Info("Auto-advance job disabled")
		return nil
	}

	if err := jm.autoAdvanceJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-advance job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	if jm.autoAdvanceJob != nil {
		jm.autoAdvanceJob.Stop()
	}
}
