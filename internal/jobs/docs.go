// Package jobs provides scheduled background tasks for the repairdesk API.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// StatusRegistryRefreshJob reloads the cached status registry on a schedule
// (STATUS_REFRESH_SCHEDULE, every 30 seconds by default). Writes made through
// this instance invalidate the cache immediately; the job picks up writes made
// by other instances.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(registryCache, cfg.StatusRefreshSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and counted in
// repairdesk_status_registry_refresh_failures_total; the previous snapshot keeps
// serving requests.
package jobs
