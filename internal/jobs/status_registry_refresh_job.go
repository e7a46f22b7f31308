package jobs

import (
	"context"
	"log/slog"
	"time"

	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshSchedule reloads the status registry every 30 seconds.
const DefaultRefreshSchedule = "*/30 * * * * *"

const refreshTimeout = 10 * time.Second

// StatusRegistryRefresher reloads the in-process status registry from storage.
type StatusRegistryRefresher interface {
	Refresh(ctx context.Context) (*status.Registry, error)
}

// StatusRegistryRefreshJob periodically reloads the status registry so that
// changes made by other instances become visible.
type StatusRegistryRefreshJob struct {
	refresher StatusRegistryRefresher
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStatusRegistryRefreshJob creates the job. An empty schedule falls back to
// DefaultRefreshSchedule. Schedules use the six-field cron format with seconds.
func NewStatusRegistryRefreshJob(refresher StatusRegistryRefresher, schedule string, logger *slog.Logger) *StatusRegistryRefreshJob {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	return &StatusRegistryRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "status_registry_refresh_job"),
	}
}

// Start schedules the refresh.
func (j *StatusRegistryRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status registry refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *StatusRegistryRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status registry refresh job stopped")
}

func (j *StatusRegistryRefreshJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	reg, err := j.refresher.Refresh(ctx)
	if err != nil {
		// The previous snapshot stays in place.
		metrics.RegistryRefreshFailuresTotal.Inc()
		j.logger.ErrorContext(ctx, "Status registry refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Status registry refreshed", "statuses", reg.Len())
}
