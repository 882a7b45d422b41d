package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
)

// Credential is a provider authentication token with its validity window.
// Credentials are owned by the credential cache and replaced, never
// mutated, on refresh so concurrent readers stay safe.
type Credential struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the credential is still usable at now, keeping a
// safety buffer before the hard expiry.
func (c Credential) Valid(now time.Time, buffer time.Duration) bool {
	return c.Token != "" && now.Before(c.ExpiresAt.Add(-buffer))
}

// ServiceabilityResult describes what a provider offers for a pincode.
type ServiceabilityResult struct {
	Serviceable     bool
	CODAvailable    bool
	PickupAvailable bool
}

// BookingConfirmation is a provider's answer to a successful booking call.
type BookingConfirmation struct {
	AWB         string
	TrackingURL string
}

// TrackingEvent is one scan in a shipment's tracking history.
type TrackingEvent struct {
	Status      booking.DeliveryStatus
	Description string
	Location    string
	OccurredAt  time.Time
}

// TrackingSnapshot is a read-only view of a shipment's tracking state at
// retrieval time. Snapshots never mutate the originating booking.
type TrackingSnapshot struct {
	ProviderName string
	TrackingID   string
	Status       booking.DeliveryStatus
	Events       []TrackingEvent
	RetrievedAt  time.Time
}

// CancellationResult is a provider's answer to a cancellation call.
type CancellationResult struct {
	TrackingID string
	Cancelled  bool
	Message    string
}

// Provider is the uniform contract every courier adapter satisfies.
// Each implementation wraps one external API's authentication scheme,
// payload shapes and status vocabulary, normalizing units (grams vs
// kilograms) and statuses into the shared domain types.
//
// Book must be called at most once per source order; the booking
// orchestrator enforces this, not the adapter.
type Provider interface {
	// Name returns the provider's stable identifier, e.g. "delhivery".
	Name() string

	// Authenticate performs the provider's credential exchange and returns
	// a fresh credential. Called by the credential cache on miss or expiry.
	Authenticate(ctx context.Context) (Credential, error)

	// CheckServiceability verifies the provider delivers to the pincode.
	CheckServiceability(ctx context.Context, pin kernel.Pincode) (ServiceabilityResult, error)

	// Quote prices the shipment, either from the provider's live pricing
	// endpoint or from an internal rate card.
	Quote(ctx context.Context, req shipment.Request) (quote.RateQuote, error)

	// Book registers the shipment with the provider and returns the AWB.
	Book(ctx context.Context, req shipment.Request, chosen quote.RateQuote) (BookingConfirmation, error)

	// Track fetches the current tracking state for an AWB.
	Track(ctx context.Context, trackingID string) (TrackingSnapshot, error)

	// Cancel requests cancellation of a booked shipment.
	Cancel(ctx context.Context, trackingID string) (CancellationResult, error)
}
