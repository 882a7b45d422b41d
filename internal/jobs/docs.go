// Package jobs provides scheduled background tasks for the rate and
// booking engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. RateCardReloadJob - Runs every five minutes to hot-reload provider rate cards from storage
// 2. CredentialWarmupJob - Runs every ten minutes to refresh provider credentials off the request path
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cardRepo, cardStore, creds, providers, logger)
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
//   - Reload job keeps the previous card set active when a reload fails
//   - Warmup job logs failures; credentials still refresh lazily per request
//   - Failed job starts will stop any already running jobs
package jobs
