// Package bookingrepo provides data transfer objects and mapping functions
// for booking persistence. The unique index on order_id is what makes
// bookings at-most-once per source order: a second insert for the same
// order fails at the database and surfaces as a BookingConflictError.
package bookingrepo

import (
	"time"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BookingDTO represents the database structure for persisting booking
// aggregates. AWB is indexed for tracking lookups; it holds the provider
// waybill for confirmed bookings and the internal reference for degraded ones.
type BookingDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ProviderName  string
	AWB           string `gorm:"index"`
	TrackingURL   string
	BookingType   int
	Status        int
	ProviderError string
	Instructions  string
	CreatedAt     time.Time
}

// TableName specifies the database table name for booking entities.
func (BookingDTO) TableName() string {
	return "bookings"
}

// fromDomain converts a booking domain aggregate to its database representation.
func fromDomain(aggregate *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		ProviderName:  aggregate.ProviderName(),
		AWB:           aggregate.AWB(),
		TrackingURL:   aggregate.TrackingURL(),
		BookingType:   int(aggregate.BookingType()),
		Status:        int(aggregate.Status()),
		ProviderError: aggregate.ProviderError(),
		Instructions:  aggregate.Instructions(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a booking domain aggregate using
// RestoreBooking.
func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(
		id,
		orderID,
		dto.ProviderName,
		dto.AWB,
		dto.TrackingURL,
		booking.Type(dto.BookingType),
		booking.Status(dto.Status),
		dto.ProviderError,
		dto.Instructions,
		dto.CreatedAt,
	)
}
