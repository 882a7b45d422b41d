package bookingrepo

import (
	"context"
	"errors"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM.
type GormBookingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBookingRepository creates a new GORM booking repository.
func NewGormBookingRepository(db *gorm.DB, tracker aggregateTracker) *GormBookingRepository {
	return &GormBookingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new booking. The unique index on order_id turns a duplicate
// insert into a BookingConflictError.
func (r *GormBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewBookingConflictError(aggregate.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderID retrieves the booking for a source order.
func (r *GormBookingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*booking.Booking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a booking by its AWB or manual reference.
func (r *GormBookingRepository) GetByTrackingID(ctx context.Context, trackingID string) (*booking.Booking, error) {
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("tracking id")
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "awb = ?", trackingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", trackingID)
		}
		return nil, err
	}

	return toDomain(dto)
}
