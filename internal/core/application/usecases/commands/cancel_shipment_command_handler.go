package commands

import (
	"context"
	"log/slog"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// CancelShipmentCommandHandler relays a cancellation to the booking's
// provider. The booking aggregate itself stays untouched; cancellation is
// provider-side state reflected later by tracking.
type CancelShipmentCommandHandler struct {
	uowFactory BookingUoWFactory
	providers  map[string]ports.Provider
	logger     *slog.Logger
}

// NewCancelShipmentCommandHandler creates a cancellation handler over the
// registered providers, keyed by provider name.
func NewCancelShipmentCommandHandler(
	uowFactory BookingUoWFactory,
	providers map[string]ports.Provider,
	logger *slog.Logger,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		providers:  providers,
		logger:     logger,
	}
}

// Handle resolves the booking and requests cancellation from its provider.
// Manual bookings cancel locally: there is no provider-side shipment yet,
// so operations is simply told to stand down.
func (h *CancelShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CancelShipmentCommand,
) (ports.CancellationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ports.CancellationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.CancellationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.BookingRepository().GetByTrackingID(ctx, cmd.TrackingID())
	if err != nil {
		return ports.CancellationResult{}, err
	}

	if aggregate.BookingType() == booking.ManualRequired {
		h.logger.InfoContext(ctx, "manual booking cancelled locally",
			"reference", cmd.TrackingID(), "provider", aggregate.ProviderName())

		return ports.CancellationResult{
			TrackingID: cmd.TrackingID(),
			Cancelled:  true,
			Message:    "manual booking cancelled; no courier shipment existed",
		}, nil
	}

	provider, ok := h.providers[aggregate.ProviderName()]
	if !ok {
		return ports.CancellationResult{}, errs.NewObjectNotFoundError(
			"provider", aggregate.ProviderName())
	}

	result, err := provider.Cancel(ctx, cmd.TrackingID())
	if err != nil {
		return ports.CancellationResult{}, err
	}

	h.logger.InfoContext(ctx, "cancellation requested",
		"awb", cmd.TrackingID(),
		"provider", aggregate.ProviderName(),
		"cancelled", result.Cancelled)

	return result, nil
}
