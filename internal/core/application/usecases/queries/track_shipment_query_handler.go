package queries

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// TrackShipmentQueryHandler resolves a tracking ID to its booking and asks
// the booking's provider for the live shipment state.
type TrackShipmentQueryHandler struct {
	bookings  ports.BookingRepository
	providers map[string]ports.Provider
}

// NewTrackShipmentQueryHandler creates a tracking handler over the booking
// store and the registered providers, keyed by provider name.
func NewTrackShipmentQueryHandler(
	bookings ports.BookingRepository,
	providers map[string]ports.Provider,
) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{
		bookings:  bookings,
		providers: providers,
	}
}

// Handle looks up the booking and fetches its provider's tracking snapshot.
// Manual bookings have no provider-side shipment, so their snapshot is
// synthesized from the stored booking instead of a provider call.
func (h TrackShipmentQueryHandler) Handle(
	ctx context.Context,
	query TrackShipmentQuery,
) (TrackShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	aggregate, err := h.bookings.GetByTrackingID(ctx, query.TrackingID())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	response := TrackShipmentQueryResponse{
		ProviderName:  aggregate.ProviderName(),
		TrackingID:    query.TrackingID(),
		BookingStatus: aggregate.Status(),
		BookingType:   aggregate.BookingType(),
		Instructions:  aggregate.Instructions(),
	}

	if aggregate.BookingType() == booking.ManualRequired {
		response.Delivery = manualSnapshot(aggregate, query.TrackingID())
		return response, nil
	}

	provider, ok := h.providers[aggregate.ProviderName()]
	if !ok {
		return TrackShipmentQueryResponse{}, errs.NewObjectNotFoundError(
			"provider", aggregate.ProviderName())
	}

	snapshot, err := provider.Track(ctx, query.TrackingID())
	if err != nil {
		return TrackShipmentQueryResponse{}, err
	}

	response.Delivery = snapshot
	return response, nil
}

func manualSnapshot(aggregate *booking.Booking, trackingID string) ports.TrackingSnapshot {
	return ports.TrackingSnapshot{
		ProviderName: aggregate.ProviderName(),
		TrackingID:   trackingID,
		Status:       booking.StatusBooked,
		Events: []ports.TrackingEvent{{
			Status:      booking.StatusBooked,
			Description: aggregate.Instructions(),
			OccurredAt:  aggregate.CreatedAt(),
		}},
		RetrievedAt: time.Now(),
	}
}
