package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrBookShipmentCommandIsNotConstructed = errors.New(
	"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
)

// BookShipmentCommand requests a booking with one chosen courier for one
// source order, at the rate the seller accepted from the comparison. The
// order ID is the idempotency key: a second command for the same order
// fails with a BookingConflictError instead of double-booking.
//
// Example:
//
//	cmd, err := NewBookShipmentCommand(orderID, "delhivery", request, chosenQuote)
//	if err != nil {
//	    return fmt.Errorf("invalid booking request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type BookShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	providerName string
	request      shipment.Request
	chosenQuote  quote.RateQuote

	guard guard.ConstructorGuard
}

// NewBookShipmentCommand creates a booking command with full validation.
// The chosen quote must belong to the named provider.
func NewBookShipmentCommand(
	orderID kernel.UUID,
	providerName string,
	request shipment.Request,
	chosenQuote quote.RateQuote,
) (BookShipmentCommand, error) {
	cmd := BookShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProviderName(providerName),
		cmd.setRequest(request),
		cmd.setChosenQuote(chosenQuote),
	); err != nil {
		return BookShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

// OrderID returns the source order being booked.
func (c BookShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProviderName returns the chosen courier.
func (c BookShipmentCommand) ProviderName() string {
	return c.providerName
}

// Request returns the shipment to book.
func (c BookShipmentCommand) Request() shipment.Request {
	return c.request
}

// ChosenQuote returns the rate the seller accepted.
func (c BookShipmentCommand) ChosenQuote() quote.RateQuote {
	return c.chosenQuote
}

func (c *BookShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *BookShipmentCommand) setProviderName(providerName string) error {
	if providerName == "" {
		return errs.NewValueIsRequiredError("provider name")
	}

	c.providerName = providerName
	return nil
}

func (c *BookShipmentCommand) setRequest(request shipment.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	c.request = request
	return nil
}

func (c *BookShipmentCommand) setChosenQuote(chosenQuote quote.RateQuote) error {
	if chosenQuote.ProviderName != c.providerName {
		return errs.NewValueIsInvalidError("chosen quote provider")
	}

	if chosenQuote.Breakdown.Total <= 0 {
		return errs.NewValueIsOutOfRangeError("chosen quote total", chosenQuote.Breakdown.Total, 0, "+inf")
	}

	c.chosenQuote = chosenQuote
	return nil
}
