package ports

import (
	"context"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking aggregates.
// The storage layer enforces at most one booking per source order via a
// unique constraint on the order identifier.
type BookingRepository interface {
	// Add persists a new booking aggregate.
	// Returns a BookingConflictError when the order already has a booking.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// GetByOrderID retrieves the booking for a source order.
	// Returns an ObjectNotFoundError when the order has no booking.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*booking.Booking, error)

	// GetByTrackingID retrieves a booking by its AWB or manual reference.
	// Returns an ObjectNotFoundError when no booking matches.
	GetByTrackingID(ctx context.Context, trackingID string) (*booking.Booking, error)
}
