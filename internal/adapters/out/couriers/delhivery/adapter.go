// Package delhivery adapts the Delhivery Express API to the provider port.
//
// Delhivery uses a long-lived static API token ("Authorization: Token ...")
// and prices shipments through its live charge calculator, so no internal
// rate card is involved. Weights travel in grams on the wire.
package delhivery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// ProviderName identifies this adapter in quotes, bookings and errors.
const ProviderName = "delhivery"

const (
	tokenLifetime     = 24 * time.Hour
	minBillableUnitKg = 0.5
)

// Config carries the Delhivery account settings.
type Config struct {
	BaseURL        string
	APIToken       string
	PickupLocation string
}

// Adapter implements ports.Provider for Delhivery.
type Adapter struct {
	cfg     Config
	client  *couriers.Client
	creds   *couriers.CredentialCache
	zones   zone.Table
	weights services.ChargeableWeightCalculator
}

// NewAdapter creates a Delhivery adapter.
func NewAdapter(cfg Config, client *couriers.Client, creds *couriers.CredentialCache) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  client,
		creds:   creds,
		zones:   zone.DefaultTable(),
		weights: services.NewChargeableWeightCalculator(services.DefaultVolumetricDivisor),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Authenticate wraps the static API token in a credential. Delhivery does
// not exchange credentials, but routing through the cache keeps the
// orchestration uniform across providers.
func (a *Adapter) Authenticate(_ context.Context) (ports.Credential, error) {
	if a.cfg.APIToken == "" {
		return ports.Credential{}, errs.NewAuthenticationError(ProviderName,
			errs.NewValueIsRequiredError("api token"))
	}

	now := time.Now()
	return ports.Credential{
		Token:     a.cfg.APIToken,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenLifetime),
	}, nil
}

// CheckServiceability queries the pincode master. An empty delivery_codes
// list means Delhivery does not serve the pincode.
func (a *Adapter) CheckServiceability(ctx context.Context, pin kernel.Pincode) (ports.ServiceabilityResult, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.ServiceabilityResult{}, err
	}

	endpoint := fmt.Sprintf("%s/c/api/pin-codes/json/?filter_codes=%s", a.cfg.BaseURL, pin.String())

	var resp pincodeResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodGet, endpoint,
		authHeader(token), nil, &resp); err != nil {
		return ports.ServiceabilityResult{}, err
	}

	if len(resp.DeliveryCodes) == 0 {
		return ports.ServiceabilityResult{}, nil
	}

	postal := resp.DeliveryCodes[0].PostalCode
	return ports.ServiceabilityResult{
		Serviceable:     true,
		CODAvailable:    postal.COD == "Y",
		PickupAvailable: postal.Pickup == "Y",
	}, nil
}

// Quote calls the live charge calculator. Delhivery returns a single
// GST-inclusive amount, so the breakdown backs the tax out of the total
// rather than itemizing courier-side charges.
func (a *Adapter) Quote(ctx context.Context, req shipment.Request) (quote.RateQuote, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return quote.RateQuote{}, err
	}

	chargeableKg, err := a.weights.Calculate(req.ActualWeightKg(), req.Dimensions(), minBillableUnitKg)
	if err != nil {
		return quote.RateQuote{}, err
	}

	z, err := a.zones.Resolve(req.Origin(), req.Destination())
	if err != nil {
		return quote.RateQuote{}, err
	}

	params := url.Values{}
	params.Set("md", "S")
	params.Set("ss", "Delivered")
	params.Set("o_pin", req.Origin().String())
	params.Set("d_pin", req.Destination().String())
	params.Set("cgm", fmt.Sprintf("%d", int(chargeableKg*1000)))
	if req.PaymentMode() == shipment.COD {
		params.Set("pt", "COD")
		params.Set("cod", fmt.Sprintf("%g", req.CODAmount()))
	} else {
		params.Set("pt", "Pre-paid")
	}

	endpoint := fmt.Sprintf("%s/api/kinko/v1/invoice/charges/.json?%s", a.cfg.BaseURL, params.Encode())

	var resp []chargeResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodGet, endpoint,
		authHeader(token), nil, &resp); err != nil {
		return quote.RateQuote{}, err
	}

	if len(resp) == 0 || resp[0].TotalAmount <= 0 {
		return quote.RateQuote{}, errs.NewRateNotFoundError(ProviderName, z.String())
	}

	total := resp[0].TotalAmount
	tax := total * services.GSTPercent / (100 + services.GSTPercent)

	return quote.RateQuote{
		ProviderName: ProviderName,
		Mode:         quote.Surface,
		Breakdown: quote.Breakdown{
			BaseRate:  total - tax - resp[0].CODCharge,
			CODCharge: resp[0].CODCharge,
			Tax:       tax,
			Total:     total,
		},
		ChargeableWeightKg:    chargeableKg,
		Zone:                  z,
		EstimatedDeliveryDays: estimatedDays(z),
	}, nil
}

// Book manifests the shipment. Delhivery reports per-package success inside
// a 200 response, so the status field is checked explicitly.
func (a *Adapter) Book(ctx context.Context, req shipment.Request, chosen quote.RateQuote) (ports.BookingConfirmation, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	payload := manifestRequest{
		PickupLocation: pickupLocation{Name: a.cfg.PickupLocation},
		Shipments: []manifestShipment{{
			OriginPin:      req.Origin().String(),
			DestinationPin: req.Destination().String(),
			WeightGrams:    int(chosen.ChargeableWeightKg * 1000),
			PaymentMode:    paymentMode(req),
			CODAmount:      req.CODAmount(),
			DeclaredValue:  req.DeclaredValue(),
		}},
	}

	endpoint := a.cfg.BaseURL + "/api/cmu/create.json"

	var resp manifestResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodPost, endpoint,
		authHeader(token), payload, &resp); err != nil {
		return ports.BookingConfirmation{}, err
	}

	if len(resp.Packages) == 0 || !strings.EqualFold(resp.Packages[0].Status, "Success") {
		return ports.BookingConfirmation{}, errs.NewProviderAPIError(ProviderName, http.StatusOK,
			fmt.Errorf("manifest rejected: %s", resp.Packages.firstRemark()))
	}

	awb := resp.Packages[0].Waybill
	return ports.BookingConfirmation{
		AWB:         awb,
		TrackingURL: fmt.Sprintf("https://www.delhivery.com/track/package/%s", awb),
	}, nil
}

// Track fetches the scan history for a waybill.
func (a *Adapter) Track(ctx context.Context, trackingID string) (ports.TrackingSnapshot, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}

	endpoint := fmt.Sprintf("%s/api/v1/packages/json/?waybill=%s", a.cfg.BaseURL, url.QueryEscape(trackingID))

	var resp trackResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodGet, endpoint,
		authHeader(token), nil, &resp); err != nil {
		return ports.TrackingSnapshot{}, err
	}

	if len(resp.ShipmentData) == 0 {
		return ports.TrackingSnapshot{}, errs.NewObjectNotFoundError("shipment", trackingID)
	}

	data := resp.ShipmentData[0].Shipment

	events := make([]ports.TrackingEvent, 0, len(data.Scans))
	for _, scan := range data.Scans {
		events = append(events, ports.TrackingEvent{
			Status:      normalizeStatus(scan.Detail.Status),
			Description: scan.Detail.Instructions,
			Location:    scan.Detail.Location,
			OccurredAt:  scan.Detail.ScanDateTime,
		})
	}

	return ports.TrackingSnapshot{
		ProviderName: ProviderName,
		TrackingID:   trackingID,
		Status:       normalizeStatus(data.Status.Status),
		Events:       events,
		RetrievedAt:  time.Now(),
	}, nil
}

// Cancel requests waybill cancellation via the package edit endpoint.
func (a *Adapter) Cancel(ctx context.Context, trackingID string) (ports.CancellationResult, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.CancellationResult{}, err
	}

	payload := cancelRequest{Waybill: trackingID, Cancellation: "true"}
	endpoint := a.cfg.BaseURL + "/api/p/edit"

	var resp cancelResponse
	if err := a.client.DoJSON(ctx, ProviderName, http.MethodPost, endpoint,
		authHeader(token), payload, &resp); err != nil {
		return ports.CancellationResult{}, err
	}

	return ports.CancellationResult{
		TrackingID: trackingID,
		Cancelled:  resp.Status,
		Message:    resp.Remark,
	}, nil
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Token " + token}
}

func paymentMode(req shipment.Request) string {
	if req.PaymentMode() == shipment.COD {
		return "COD"
	}
	return "Pre-paid"
}

func estimatedDays(z zone.Zone) int {
	switch z {
	case zone.SameCity:
		return 1
	case zone.SameState, zone.MetroToMetro:
		return 2
	case zone.NorthEastJK:
		return 5
	default:
		return 4
	}
}

func normalizeStatus(raw string) booking.DeliveryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "manifested", "not picked":
		return booking.StatusBooked
	case "in transit", "pending":
		return booking.StatusInTransit
	case "dispatched", "out for delivery":
		return booking.StatusOutForDelivery
	case "delivered":
		return booking.StatusDelivered
	case "rto", "returned", "lost":
		return booking.StatusException
	case "cancelled", "canceled":
		return booking.StatusCancelled
	default:
		return booking.StatusUnknown
	}
}
