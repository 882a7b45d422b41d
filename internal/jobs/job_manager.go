package jobs

import (
	"fmt"
	"log/slog"

	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	rateCardReloadJob   *RateCardReloadJob
	credentialWarmupJob *CredentialWarmupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cardRepo ports.RateCardRepository,
	cardStore *ratecard.Store,
	creds *couriers.CredentialCache,
	providers []ports.Provider,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		rateCardReloadJob:   NewRateCardReloadJob(cardRepo, cardStore, logger),
		credentialWarmupJob: NewCredentialWarmupJob(creds, providers, logger),
	}
}

// RateCardReloadJob exposes the reload job so startup can run the initial
// synchronous load.
func (jm *JobManager) RateCardReloadJob() *RateCardReloadJob {
	return jm.rateCardReloadJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.rateCardReloadJob.Start(); err != nil {
		return fmt.Errorf("failed to start rate card reload job: %w", err)
	}

	if err := jm.credentialWarmupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.rateCardReloadJob.Stop()
		return fmt.Errorf("failed to start credential warmup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.rateCardReloadJob.Stop()
	jm.credentialWarmupJob.Stop()
}
