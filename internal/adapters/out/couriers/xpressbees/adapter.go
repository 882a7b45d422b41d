// Package xpressbees adapts the Xpressbees shipment API to the provider port.
//
// Xpressbees exchanges an email/password pair for a short-lived bearer
// token. It exposes no public rate endpoint, so quotes are priced from the
// negotiated rate card held in the in-memory store.
package xpressbees

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// ProviderName identifies this adapter in quotes, bookings and errors.
const ProviderName = "xpressbees"

const tokenLifetime = 12 * time.Hour

// Config carries the Xpressbees account settings.
type Config struct {
	BaseURL  string
	Email    string
	Password string
}

// Adapter implements ports.Provider for Xpressbees.
type Adapter struct {
	cfg     Config
	client  *couriers.Client
	creds   *couriers.CredentialCache
	cards   *ratecard.Store
	zones   zone.Table
	weights services.ChargeableWeightCalculator
	pricer  services.RateCalculator
}

// NewAdapter creates an Xpressbees adapter pricing against the card store.
func NewAdapter(cfg Config, client *couriers.Client, creds *couriers.CredentialCache, cards *ratecard.Store) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  client,
		creds:   creds,
		cards:   cards,
		zones:   zone.DefaultTable(),
		weights: services.NewChargeableWeightCalculator(services.DefaultVolumetricDivisor),
		pricer:  services.NewRateCalculator(),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Authenticate exchanges the account credentials for a bearer token.
// A rejected login surfaces as an AuthenticationError so it is never retried.
func (a *Adapter) Authenticate(ctx context.Context) (ports.Credential, error) {
	payload := loginRequest{Email: a.cfg.Email, Password: a.cfg.Password}

	var resp loginResponse
	err := a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/users/login", nil, payload, &resp)
	if err != nil {
		var apiErr errs.ProviderAPIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return ports.Credential{}, errs.NewAuthenticationError(ProviderName, err)
		}
		return ports.Credential{}, err
	}

	if !resp.Status || resp.Data == "" {
		return ports.Credential{}, errs.NewAuthenticationError(ProviderName,
			fmt.Errorf("login rejected: %s", resp.Message))
	}

	now := time.Now()
	return ports.Credential{
		Token:     resp.Data,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenLifetime),
	}, nil
}

// CheckServiceability queries the pincode serviceability endpoint.
func (a *Adapter) CheckServiceability(ctx context.Context, pin kernel.Pincode) (ports.ServiceabilityResult, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.ServiceabilityResult{}, err
	}

	endpoint := fmt.Sprintf("%s/courier/serviceability/%s", a.cfg.BaseURL, pin.String())

	var resp serviceabilityResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodGet, endpoint,
		bearerHeader(token), nil, &resp); err != nil {
		return ports.ServiceabilityResult{}, err
	}

	if !resp.Status || len(resp.Data) == 0 {
		return ports.ServiceabilityResult{}, nil
	}

	entry := resp.Data[0]
	return ports.ServiceabilityResult{
		Serviceable:     true,
		CODAvailable:    entry.COD == 1,
		PickupAvailable: entry.Pickup == 1,
	}, nil
}

// Quote prices the shipment against the negotiated surface rate card.
func (a *Adapter) Quote(_ context.Context, req shipment.Request) (quote.RateQuote, error) {
	card, err := a.cards.Get(ProviderName, quote.Surface)
	if err != nil {
		return quote.RateQuote{}, err
	}

	z, err := a.zones.Resolve(req.Origin(), req.Destination())
	if err != nil {
		return quote.RateQuote{}, err
	}

	chargeableKg, err := a.weights.Calculate(req.ActualWeightKg(), req.Dimensions(), card.MinBillableUnitKg())
	if err != nil {
		return quote.RateQuote{}, err
	}

	return a.pricer.Quote(card, z, chargeableKg, req.PaymentMode(), req.CODAmount())
}

// Book registers the shipment and returns the assigned AWB.
func (a *Adapter) Book(ctx context.Context, req shipment.Request, chosen quote.RateQuote) (ports.BookingConfirmation, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	payload := shipmentRequest{
		OriginPincode:      req.Origin().String(),
		DestinationPincode: req.Destination().String(),
		WeightKg:           chosen.ChargeableWeightKg,
		PaymentType:        paymentType(req),
		CollectableAmount:  req.CODAmount(),
		DeclaredValue:      req.DeclaredValue(),
	}

	var resp shipmentResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/shipments2", bearerHeader(token), payload, &resp); err != nil {
		return ports.BookingConfirmation{}, err
	}

	if !resp.Status || resp.Data.AWBNumber == "" {
		return ports.BookingConfirmation{}, errs.NewProviderAPIError(ProviderName, http.StatusOK,
			fmt.Errorf("booking rejected: %s", resp.Message))
	}

	return ports.BookingConfirmation{
		AWB:         resp.Data.AWBNumber,
		TrackingURL: fmt.Sprintf("https://www.xpressbees.com/track?awb=%s", resp.Data.AWBNumber),
	}, nil
}

// Track fetches the shipment status and scan history for an AWB.
func (a *Adapter) Track(ctx context.Context, trackingID string) (ports.TrackingSnapshot, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}

	endpoint := fmt.Sprintf("%s/shipments2/track/%s", a.cfg.BaseURL, trackingID)

	var resp trackResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodGet, endpoint,
		bearerHeader(token), nil, &resp); err != nil {
		return ports.TrackingSnapshot{}, err
	}

	if !resp.Status {
		return ports.TrackingSnapshot{}, errs.NewObjectNotFoundError("shipment", trackingID)
	}

	events := make([]ports.TrackingEvent, 0, len(resp.Data.History))
	for _, item := range resp.Data.History {
		events = append(events, ports.TrackingEvent{
			Status:      normalizeStatus(item.StatusCode),
			Description: item.Message,
			Location:    item.Location,
			OccurredAt:  item.EventTime,
		})
	}

	return ports.TrackingSnapshot{
		ProviderName: ProviderName,
		TrackingID:   trackingID,
		Status:       normalizeStatus(resp.Data.Status),
		Events:       events,
		RetrievedAt:  time.Now(),
	}, nil
}

// Cancel requests cancellation of a booked shipment.
func (a *Adapter) Cancel(ctx context.Context, trackingID string) (ports.CancellationResult, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.CancellationResult{}, err
	}

	payload := cancelRequest{AWB: trackingID}

	var resp cancelResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/shipments2/cancel", bearerHeader(token), payload, &resp); err != nil {
		return ports.CancellationResult{}, err
	}

	return ports.CancellationResult{
		TrackingID: trackingID,
		Cancelled:  resp.Status,
		Message:    resp.Message,
	}, nil
}

func bearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func paymentType(req shipment.Request) string {
	if req.PaymentMode() == shipment.COD {
		return "cod"
	}
	return "prepaid"
}

func normalizeStatus(raw string) booking.DeliveryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending pickup", "manifested", "pickup scheduled":
		return booking.StatusBooked
	case "in transit", "reached at destination":
		return booking.StatusInTransit
	case "out for delivery":
		return booking.StatusOutForDelivery
	case "delivered":
		return booking.StatusDelivered
	case "undelivered", "rto", "rto delivered", "lost":
		return booking.StatusException
	case "cancelled":
		return booking.StatusCancelled
	default:
		return booking.StatusUnknown
	}
}
