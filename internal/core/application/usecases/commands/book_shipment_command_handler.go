package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/zoobzio/pipz"
)

// manualReferencePrefix marks internal references issued when automated
// booking degrades to a manual one.
const manualReferencePrefix = "MAN-"

// BookShipmentCommandHandler orchestrates one booking attempt against a
// courier provider.
//
// The booking walks a state machine: Requested, Authenticating, BookingInProgress,
// then one of Confirmed, Degraded or Failed. Provider failures do not fail
// the command: the booking degrades to a manual one with an internal
// reference, so the seller always leaves with a persisted booking. The only
// booking error a caller sees is a BookingConflictError for an order that
// already has one.
type BookShipmentCommandHandler struct {
	uowFactory BookingUoWFactory
	providers  map[string]ports.Provider
	logger     *slog.Logger
}

// NewBookShipmentCommandHandler creates a booking handler over the
// registered providers, keyed by provider name.
func NewBookShipmentCommandHandler(
	uowFactory BookingUoWFactory,
	providers map[string]ports.Provider,
	logger *slog.Logger,
) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory: uowFactory,
		providers:  providers,
		logger:     logger,
	}
}

// Handle processes the booking command and returns the persisted booking.
// Duplicate orders fail with a BookingConflictError before any provider
// call is made.
func (h *BookShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd BookShipmentCommand,
) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	provider, ok := h.providers[cmd.ProviderName()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("provider", cmd.ProviderName())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookingRepo := uow.BookingRepository()

	if existing, err := bookingRepo.GetByOrderID(ctx, cmd.OrderID()); err == nil && existing != nil {
		return nil, errs.NewBookingConflictError(cmd.OrderID().String())
	} else if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err := booking.NewBooking(kernel.NewUUID(), cmd.OrderID(), cmd.ProviderName())
	if err != nil {
		return nil, err
	}

	if err = h.execute(ctx, provider, cmd, aggregate); err != nil {
		return nil, err
	}

	if err = bookingRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// bookingTask carries the booking attempt through the fallback chain.
type bookingTask struct {
	aggregate *booking.Booking
}

// execute runs the provider booking with a manual-degrade fallback: when
// the automated path fails for any reason, the degrade step records the
// failure and issues an internal reference instead of erroring.
func (h *BookShipmentCommandHandler) execute(
	ctx context.Context,
	provider ports.Provider,
	cmd BookShipmentCommand,
	aggregate *booking.Booking,
) error {
	if err := aggregate.StartAuthentication(); err != nil {
		return err
	}

	// The fallback chain loses the first processor's error, so the
	// automated step parks it here for the degrade step to record.
	var providerErr error

	apiBook := pipz.Apply("api-book", func(ctx context.Context, task bookingTask) (bookingTask, error) {
		if err := task.aggregate.StartBooking(); err != nil {
			providerErr = err
			return task, err
		}

		confirmation, err := provider.Book(ctx, cmd.Request(), cmd.ChosenQuote())
		if err != nil {
			providerErr = err
			return task, err
		}

		return task, task.aggregate.Confirm(confirmation.AWB, confirmation.TrackingURL)
	})

	manualDegrade := pipz.Apply("manual-degrade", func(ctx context.Context, task bookingTask) (bookingTask, error) {
		reference := manualReference()
		instructions := fmt.Sprintf(
			"Automated booking with %s failed. Operations will manifest this shipment manually; quote reference %s until the courier issues an AWB.",
			provider.Name(), reference)

		h.logger.WarnContext(ctx, "booking degraded to manual",
			"provider", provider.Name(),
			"order_id", cmd.OrderID().String(),
			"reference", reference,
			"error", providerErr)

		return task, task.aggregate.Degrade(reference, instructions, providerErr)
	})

	chain := pipz.NewFallback("book-shipment", apiBook, manualDegrade)

	if _, err := chain.Process(ctx, bookingTask{aggregate: aggregate}); err != nil {
		// Even the degrade step failed; the booking is unusable.
		if failErr := aggregate.Fail(providerErr); failErr != nil {
			return errors.Join(err, failErr)
		}
		return err
	}

	return nil
}

// manualReference issues a short internal reference for degraded bookings.
func manualReference() string {
	return manualReferencePrefix + strings.ToUpper(uuid.NewString()[:8])
}
