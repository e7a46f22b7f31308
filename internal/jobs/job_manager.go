package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the API process.
type JobManager struct {
	registryRefreshJob *StatusRegistryRefreshJob
}

// NewJobManager wires every job to its dependencies.
func NewJobManager(refresher StatusRegistryRefresher, refreshSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		registryRefreshJob: NewStatusRegistryRefreshJob(refresher, refreshSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.registryRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start status registry refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.registryRefreshJob.Stop()
}
