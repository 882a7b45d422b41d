// Package ecomexpress adapts the Ecom Express API to the provider port.
//
// Ecom Express runs a form-encoded API that authenticates every call with
// the raw username/password pair instead of a token. Authenticate validates
// the pair once against the serviceability endpoint and synthesizes a
// credential so the cache and orchestrator see the same contract as
// token-based couriers. Pricing comes from the negotiated rate card.
package ecomexpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
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
const ProviderName = "ecomexpress"

const credentialLifetime = 24 * time.Hour

// probePincode is a known-serviceable pincode used to validate credentials.
const probePincode = "110001"

// Config carries the Ecom Express account settings.
type Config struct {
	BaseURL  string
	Username string
	Password string
}

// Adapter implements ports.Provider for Ecom Express.
type Adapter struct {
	cfg     Config
	client  *couriers.Client
	creds   *couriers.CredentialCache
	cards   *ratecard.Store
	zones   zone.Table
	weights services.ChargeableWeightCalculator
	pricer  services.RateCalculator
}

// NewAdapter creates an Ecom Express adapter pricing against the card store.
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

// Authenticate validates the credential pair with a probe call. The API
// carries the pair on every request, so the returned token is only a cache
// marker for "credentials verified".
func (a *Adapter) Authenticate(ctx context.Context) (ports.Credential, error) {
	if a.cfg.Username == "" || a.cfg.Password == "" {
		return ports.Credential{}, errs.NewAuthenticationError(ProviderName,
			errs.NewValueIsRequiredError("username and password"))
	}

	var resp []pincodeEntry
	err := a.client.DoForm(ctx, ProviderName, a.cfg.BaseURL+"/apiv2/pincodes/",
		nil, a.form(url.Values{"pincode": {probePincode}}), &resp)
	if err != nil {
		var apiErr errs.ProviderAPIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return ports.Credential{}, errs.NewAuthenticationError(ProviderName, err)
		}
		return ports.Credential{}, err
	}

	now := time.Now()
	return ports.Credential{
		Token:     a.cfg.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(credentialLifetime),
	}, nil
}

// CheckServiceability queries the pincode master.
func (a *Adapter) CheckServiceability(ctx context.Context, pin kernel.Pincode) (ports.ServiceabilityResult, error) {
	if _, err := a.creds.Token(ctx, a); err != nil {
		return ports.ServiceabilityResult{}, err
	}

	var resp []pincodeEntry
	err := a.client.DoForm(ctx, ProviderName, a.cfg.BaseURL+"/apiv2/pincodes/",
		nil, a.form(url.Values{"pincode": {pin.String()}}), &resp)
	if err != nil {
		return ports.ServiceabilityResult{}, err
	}

	if len(resp) == 0 {
		return ports.ServiceabilityResult{}, nil
	}

	entry := resp[0]
	return ports.ServiceabilityResult{
		Serviceable:     strings.EqualFold(entry.Active, "true"),
		CODAvailable:    strings.EqualFold(entry.COD, "true"),
		PickupAvailable: strings.EqualFold(entry.Pickup, "true"),
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

// Book manifests the shipment. The manifest payload is a JSON document
// carried inside a form field, as the API requires.
func (a *Adapter) Book(ctx context.Context, req shipment.Request, chosen quote.RateQuote) (ports.BookingConfirmation, error) {
	if _, err := a.creds.Token(ctx, a); err != nil {
		return ports.BookingConfirmation{}, err
	}

	manifest, err := json.Marshal([]manifestEntry{{
		PickupPincode:    req.Origin().String(),
		DropPincode:      req.Destination().String(),
		WeightKg:         chosen.ChargeableWeightKg,
		PaymentMode:      paymentMode(req),
		CollectableValue: req.CODAmount(),
		DeclaredValue:    req.DeclaredValue(),
	}})
	if err != nil {
		return ports.BookingConfirmation{}, errs.NewProviderAPIError(ProviderName, 0,
			fmt.Errorf("encode manifest: %w", err))
	}

	var resp manifestResponse
	err = a.client.DoForm(ctx, ProviderName, a.cfg.BaseURL+"/apiv2/manifest_awb/",
		nil, a.form(url.Values{"json_input": {string(manifest)}}), &resp)
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	if len(resp.Shipments) == 0 || !resp.Shipments[0].Success {
		return ports.BookingConfirmation{}, errs.NewProviderAPIError(ProviderName, 200,
			fmt.Errorf("manifest rejected: %s", resp.firstReason()))
	}

	awb := resp.Shipments[0].AWB
	return ports.BookingConfirmation{
		AWB:         awb,
		TrackingURL: fmt.Sprintf("https://www.ecomexpress.in/tracking/?awb_field=%s", awb),
	}, nil
}

// Track fetches the shipment status for an AWB.
func (a *Adapter) Track(ctx context.Context, trackingID string) (ports.TrackingSnapshot, error) {
	if _, err := a.creds.Token(ctx, a); err != nil {
		return ports.TrackingSnapshot{}, err
	}

	var resp trackResponse
	err := a.client.DoForm(ctx, ProviderName, a.cfg.BaseURL+"/apiv2/track_me/",
		nil, a.form(url.Values{"awb": {trackingID}}), &resp)
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}

	if len(resp.Shipments) == 0 {
		return ports.TrackingSnapshot{}, errs.NewObjectNotFoundError("shipment", trackingID)
	}

	data := resp.Shipments[0]

	events := make([]ports.TrackingEvent, 0, len(data.Scans))
	for _, scan := range data.Scans {
		events = append(events, ports.TrackingEvent{
			Status:      normalizeStatus(scan.Status),
			Description: scan.Remark,
			Location:    scan.Location,
			OccurredAt:  scan.UpdatedOn,
		})
	}

	return ports.TrackingSnapshot{
		ProviderName: ProviderName,
		TrackingID:   trackingID,
		Status:       normalizeStatus(data.Status),
		Events:       events,
		RetrievedAt:  time.Now(),
	}, nil
}

// Cancel requests cancellation of a manifested AWB.
func (a *Adapter) Cancel(ctx context.Context, trackingID string) (ports.CancellationResult, error) {
	if _, err := a.creds.Token(ctx, a); err != nil {
		return ports.CancellationResult{}, err
	}

	var resp []cancelEntry
	err := a.client.DoForm(ctx, ProviderName, a.cfg.BaseURL+"/apiv2/cancel_awb/",
		nil, a.form(url.Values{"awbs": {trackingID}}), &resp)
	if err != nil {
		return ports.CancellationResult{}, err
	}

	if len(resp) == 0 {
		return ports.CancellationResult{TrackingID: trackingID}, nil
	}

	return ports.CancellationResult{
		TrackingID: trackingID,
		Cancelled:  resp[0].Success,
		Message:    resp[0].Reason,
	}, nil
}

// form merges the credential pair into every outgoing form payload.
func (a *Adapter) form(extra url.Values) url.Values {
	form := url.Values{
		"username": {a.cfg.Username},
		"password": {a.cfg.Password},
	}
	for key, values := range extra {
		form[key] = values
	}
	return form
}

func paymentMode(req shipment.Request) string {
	if req.PaymentMode() == shipment.COD {
		return "COD"
	}
	return "PPD"
}

func normalizeStatus(raw string) booking.DeliveryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "soft data uploaded", "pickup assigned", "pickup done":
		return booking.StatusBooked
	case "in transit", "shipment arrived", "shipment departed":
		return booking.StatusInTransit
	case "out for delivery":
		return booking.StatusOutForDelivery
	case "delivered":
		return booking.StatusDelivered
	case "undelivered", "rto initiated", "rto delivered", "lost":
		return booking.StatusException
	case "cancelled":
		return booking.StatusCancelled
	default:
		return booking.StatusUnknown
	}
}
