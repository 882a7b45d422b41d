package commands

import (
	"errors"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand requests cancellation of a booked shipment by its
// AWB or manual reference.
type CancelShipmentCommand struct {
	trackingID string

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a cancellation command for a tracking ID.
func NewCancelShipmentCommand(trackingID string) (CancelShipmentCommand, error) {
	if trackingID == "" {
		return CancelShipmentCommand{}, errs.NewValueIsRequiredError("tracking id")
	}

	return CancelShipmentCommand{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// TrackingID returns the AWB or manual reference to cancel.
func (c CancelShipmentCommand) TrackingID() string {
	return c.trackingID
}
