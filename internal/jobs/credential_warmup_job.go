package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// credentialWarmupSchedule refreshes provider tokens every ten minutes so
// the first quote after a quiet period never pays the authentication
// round trip.
const credentialWarmupSchedule = "0 */10 * * * *"

const warmupTimeout = 30 * time.Second

// CredentialWarmupJob keeps provider credentials fresh in the cache. The
// cache itself refreshes lazily on expiry; this job just moves that work
// off the request path.
type CredentialWarmupJob struct {
	creds     *couriers.CredentialCache
	providers []ports.Provider
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewCredentialWarmupJob creates the warmup job over the credential cache
// and all registered providers.
func NewCredentialWarmupJob(
	creds *couriers.CredentialCache,
	providers []ports.Provider,
	logger *slog.Logger,
) *CredentialWarmupJob {
	return &CredentialWarmupJob{
		creds:     creds,
		providers: providers,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "credential_warmup_job"),
	}
}

// Start begins the periodic warmup.
func (j *CredentialWarmupJob) Start() error {
	_, err := j.cron.AddFunc(credentialWarmupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
		defer cancel()

		for _, provider := range j.providers {
			if _, err := j.creds.Token(ctx, provider); err != nil {
				// A provider with broken credentials still quotes from
				// cards or fails per request; warmup only reports it.
				j.logger.WarnContext(ctx, "credential warmup failed",
					"provider", provider.Name(), "error", err)
			}
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "credential warmup job started (running every 10 minutes)")
	return nil
}

// Stop stops the periodic warmup.
func (j *CredentialWarmupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "credential warmup job stopped")
}
