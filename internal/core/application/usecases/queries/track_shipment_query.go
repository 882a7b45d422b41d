package queries

import (
	"errors"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery retrieves the live tracking state of a booked shipment
// by its AWB or manual reference.
type TrackShipmentQuery struct {
	trackingID string

	guard guard.ConstructorGuard
}

// NewTrackShipmentQuery creates a tracking query for an AWB or manual reference.
func NewTrackShipmentQuery(trackingID string) (TrackShipmentQuery, error) {
	if trackingID == "" {
		return TrackShipmentQuery{}, errs.NewValueIsRequiredError("tracking id")
	}

	return TrackShipmentQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

// TrackingID returns the AWB or manual reference being tracked.
func (q TrackShipmentQuery) TrackingID() string {
	return q.trackingID
}

// TrackShipmentQueryResponse combines the stored booking state with the
// provider's live tracking snapshot. Tracking is read-only: the snapshot
// never feeds back into the booking aggregate.
type TrackShipmentQueryResponse struct {
	ProviderName  string
	TrackingID    string
	BookingStatus booking.Status
	BookingType   booking.Type
	Instructions  string
	Delivery      ports.TrackingSnapshot
}
