package booking

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

// ErrBookingIsNotConstructed is returned when a Booking instance was not
// created through the NewBooking factory method.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")

// Type distinguishes automated bookings from manual fallbacks.
type Type int

const (
	// UnknownType represents an invalid or undefined booking type.
	UnknownType Type = iota

	// ApiAutomated means the provider's booking API issued the AWB.
	ApiAutomated

	// ManualRequired means the provider call failed and an internal
	// reference was issued; operations books the shipment by hand.
	ManualRequired
)

// String returns the human-readable name of the booking type.
func (t Type) String() string {
	switch t {
	case ApiAutomated:
		return "ApiAutomated"
	case ManualRequired:
		return "ManualRequired"
	default:
		return "Unknown"
	}
}

// Booking is the aggregate root for one booking attempt against a courier
// provider. It is created once per source order and immutable after it
// reaches a final status; tracking calls produce separate read-only
// snapshots rather than mutating the booking.
//
// Invariants:
//   - Exactly one booking per source order (enforced by the orchestrator)
//   - Status transitions follow the state machine in Status
//   - A Confirmed booking carries a provider AWB
//   - A Degraded booking carries an internal manual reference
type Booking struct {
	id           kernel.UUID
	orderID      kernel.UUID
	providerName string
	awb          string
	trackingURL  string
	bookingType  Type
	status       Status
	providerErr  string
	instructions string
	createdAt    time.Time

	isConstructed bool
}

// NewBooking creates a booking attempt in Requested status for an order.
func NewBooking(id kernel.UUID, orderID kernel.UUID, providerName string) (*Booking, error) {
	b := &Booking{
		status:        Requested,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setProviderName(providerName),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBooking reconstructs a booking from persistence. Used by the
// repository only; validates the restored state.
func RestoreBooking(
	id kernel.UUID,
	orderID kernel.UUID,
	providerName string,
	awb string,
	trackingURL string,
	bookingType Type,
	status Status,
	providerErr string,
	instructions string,
	createdAt time.Time,
) (*Booking, error) {
	b := &Booking{
		awb:           awb,
		trackingURL:   trackingURL,
		bookingType:   bookingType,
		providerErr:   providerErr,
		instructions:  instructions,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setProviderName(providerName),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	b.status = status
	return b, nil
}

// Validate ensures the Booking was created through a constructor.
func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() kernel.UUID {
	return b.id
}

// OrderID returns the source order this booking belongs to.
func (b *Booking) OrderID() kernel.UUID {
	return b.orderID
}

// ProviderName returns the courier the booking targets.
func (b *Booking) ProviderName() string {
	return b.providerName
}

// AWB returns the provider's air waybill number, or the internal manual
// reference for degraded bookings.
func (b *Booking) AWB() string {
	return b.awb
}

// TrackingURL returns the public tracking URL, if the provider issued one.
func (b *Booking) TrackingURL() string {
	return b.trackingURL
}

// BookingType returns whether the booking was automated or fell back to manual.
func (b *Booking) BookingType() Type {
	return b.bookingType
}

// Status returns the current lifecycle status.
func (b *Booking) Status() Status {
	return b.status
}

// ProviderError returns the raw provider error text for degraded bookings.
func (b *Booking) ProviderError() string {
	return b.providerErr
}

// Instructions returns the next-step instructions attached to degraded bookings.
func (b *Booking) Instructions() string {
	return b.instructions
}

// CreatedAt returns the booking creation time in UTC.
func (b *Booking) CreatedAt() time.Time {
	return b.createdAt
}

// StartAuthentication moves the booking into the credential exchange phase.
func (b *Booking) StartAuthentication() error {
	newStatus, err := b.status.Authenticate()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// StartBooking moves the booking into the provider call phase.
func (b *Booking) StartBooking() error {
	newStatus, err := b.status.Book()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Confirm records a successful provider booking: the AWB and tracking URL
// issued by the courier. The booking becomes final.
func (b *Booking) Confirm(awb, trackingURL string) error {
	if awb == "" {
		return errs.NewValueIsRequiredError("awb")
	}

	newStatus, err := b.status.Confirm()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.bookingType = ApiAutomated
	b.awb = awb
	b.trackingURL = trackingURL
	return nil
}

// Degrade records a provider failure and the manual fallback: an internal
// reference replaces the AWB and human-readable instructions tell the
// seller what happens next. The booking becomes final.
func (b *Booking) Degrade(reference, instructions string, cause error) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}

	newStatus, err := b.status.Degrade()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.bookingType = ManualRequired
	b.awb = reference
	b.instructions = instructions
	if cause != nil {
		b.providerErr = cause.Error()
	}
	return nil
}

// Fail records a booking attempt that produced no usable result.
func (b *Booking) Fail(cause error) error {
	newStatus, err := b.status.Fail()
	if err != nil {
		return err
	}

	b.status = newStatus
	if cause != nil {
		b.providerErr = cause.Error()
	}
	return nil
}

func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Booking) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *Booking) setProviderName(providerName string) error {
	if providerName == "" {
		return errs.NewValueIsRequiredError("provider name")
	}
	b.providerName = providerName
	return nil
}
