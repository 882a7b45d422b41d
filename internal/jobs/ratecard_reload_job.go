package jobs

import (
	"context"
	"log/slog"

	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// rateCardReloadSchedule reloads cards every five minutes, which is fast
// enough for operator edits to take effect without a restart.
const rateCardReloadSchedule = "0 */5 * * * *"

// RateCardReloadJob periodically reloads the provider rate cards from
// storage into the in-memory store. The store swaps the card set wholesale,
// so in-flight quotes keep pricing against the card they started with and
// an invalid card set leaves the previous one active.
type RateCardReloadJob struct {
	repo   ports.RateCardRepository
	store  *ratecard.Store
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRateCardReloadJob creates the reload job over the card repository and
// the active store.
func NewRateCardReloadJob(repo ports.RateCardRepository, store *ratecard.Store, logger *slog.Logger) *RateCardReloadJob {
	return &RateCardReloadJob{
		repo:   repo,
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "ratecard_reload_job"),
	}
}

// Reload fetches all cards and replaces the active set. Exposed so startup
// can perform the initial load synchronously before serving traffic.
func (j *RateCardReloadJob) Reload(ctx context.Context) error {
	cards, err := j.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	if err := j.store.Replace(cards); err != nil {
		return err
	}

	j.logger.InfoContext(ctx, "rate cards reloaded", "cards", len(cards))
	return nil
}

// Start begins the periodic reload.
func (j *RateCardReloadJob) Start() error {
	_, err := j.cron.AddFunc(rateCardReloadSchedule, func() {
		ctx := context.Background()
		if err := j.Reload(ctx); err != nil {
			j.logger.ErrorContext(ctx, "rate card reload failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "rate card reload job started (running every 5 minutes)")
	return nil
}

// Stop stops the periodic reload.
func (j *RateCardReloadJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "rate card reload job stopped")
}
