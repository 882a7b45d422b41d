// Package bluedart adapts the Blue Dart API to the provider port.
//
// Blue Dart exchanges a licence key for a short-lived JWT and prices
// shipments through its live rate endpoint. Air is its primary service
// mode, so quotes carry quote.Air.
package bluedart

import (
	"context"
	"errors"
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
const ProviderName = "bluedart"

const (
	tokenLifetime     = 12 * time.Hour
	minBillableUnitKg = 0.5
)

// Config carries the Blue Dart account settings.
type Config struct {
	BaseURL    string
	LicenceKey string
	LoginID    string
}

// Adapter implements ports.Provider for Blue Dart.
type Adapter struct {
	cfg     Config
	client  *couriers.Client
	creds   *couriers.CredentialCache
	zones   zone.Table
	weights services.ChargeableWeightCalculator
}

// NewAdapter creates a Blue Dart adapter.
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

// Authenticate exchanges the licence key for a JWT.
func (a *Adapter) Authenticate(ctx context.Context) (ports.Credential, error) {
	headers := map[string]string{
		"ClientID":     a.cfg.LoginID,
		"clientSecret": a.cfg.LicenceKey,
	}

	var resp loginResponse
	err := a.client.DoJSON(ctx, ProviderName, http.MethodGet,
		a.cfg.BaseURL+"/in/transportation/token/v1/login", headers, nil, &resp)
	if err != nil {
		var apiErr errs.ProviderAPIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return ports.Credential{}, errs.NewAuthenticationError(ProviderName, err)
		}
		return ports.Credential{}, err
	}

	if resp.JWTToken == "" {
		return ports.Credential{}, errs.NewAuthenticationError(ProviderName,
			fmt.Errorf("login returned no token: %s", resp.Error))
	}

	now := time.Now()
	return ports.Credential{
		Token:     resp.JWTToken,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenLifetime),
	}, nil
}

// CheckServiceability queries the pincode finder.
func (a *Adapter) CheckServiceability(ctx context.Context, pin kernel.Pincode) (ports.ServiceabilityResult, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.ServiceabilityResult{}, err
	}

	payload := serviceabilityRequest{Pincode: pin.String()}

	var resp serviceabilityResponse
	err = a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/in/transportation/finder/v1/GetServicesforPincode",
		jwtHeader(token), payload, &resp)
	if err != nil {
		return ports.ServiceabilityResult{}, err
	}

	return ports.ServiceabilityResult{
		Serviceable:     strings.EqualFold(resp.ApexInbound, "Y") || strings.EqualFold(resp.GroundInbound, "Y"),
		CODAvailable:    strings.EqualFold(resp.CODAvailable, "Y"),
		PickupAvailable: strings.EqualFold(resp.ApexOutbound, "Y"),
	}, nil
}

// Quote calls the live rate endpoint. Blue Dart itemizes its charges, so
// the breakdown maps straight through.
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

	payload := rateRequest{
		OriginPincode:      req.Origin().String(),
		DestinationPincode: req.Destination().String(),
		WeightKg:           chargeableKg,
		ProductCode:        "A",
		SubProductCode:     subProductCode(req),
		CollectableAmount:  req.CODAmount(),
		DeclaredValue:      req.DeclaredValue(),
	}

	var resp rateResponse
	err = a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/in/transportation/rate/v1/GetDomesticRate",
		jwtHeader(token), payload, &resp)
	if err != nil {
		return quote.RateQuote{}, err
	}

	if resp.TotalAmount <= 0 {
		return quote.RateQuote{}, errs.NewRateNotFoundError(ProviderName, z.String())
	}

	return quote.RateQuote{
		ProviderName: ProviderName,
		Mode:         quote.Air,
		Breakdown: quote.Breakdown{
			BaseRate:      resp.BaseAmount,
			CODCharge:     resp.CODCharge,
			FuelSurcharge: resp.FuelSurcharge,
			Tax:           resp.TaxAmount,
			Total:         resp.TotalAmount,
		},
		ChargeableWeightKg:    chargeableKg,
		Zone:                  z,
		EstimatedDeliveryDays: resp.TransitDays,
	}, nil
}

// Book generates a waybill.
func (a *Adapter) Book(ctx context.Context, req shipment.Request, chosen quote.RateQuote) (ports.BookingConfirmation, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	payload := waybillRequest{
		OriginPincode:      req.Origin().String(),
		DestinationPincode: req.Destination().String(),
		WeightKg:           chosen.ChargeableWeightKg,
		ProductCode:        "A",
		SubProductCode:     subProductCode(req),
		CollectableAmount:  req.CODAmount(),
		DeclaredValue:      req.DeclaredValue(),
	}

	var resp waybillResponse
	err = a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/in/transportation/waybill/v1/GenerateWayBill",
		jwtHeader(token), payload, &resp)
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	if resp.IsError || resp.AWBNo == "" {
		return ports.BookingConfirmation{}, errs.NewProviderAPIError(ProviderName, http.StatusOK,
			fmt.Errorf("waybill rejected: %s", resp.ErrorMessage))
	}

	return ports.BookingConfirmation{
		AWB:         resp.AWBNo,
		TrackingURL: fmt.Sprintf("https://www.bluedart.com/tracking?awb=%s", resp.AWBNo),
	}, nil
}

// Track fetches the shipment status for an AWB.
func (a *Adapter) Track(ctx context.Context, trackingID string) (ports.TrackingSnapshot, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}

	endpoint := fmt.Sprintf("%s/in/transportation/tracking/v1/shipment?awb=%s",
		a.cfg.BaseURL, url.QueryEscape(trackingID))

	var resp trackResponse
	err = a.client.DoJSON(ctx, ProviderName, http.MethodGet, endpoint,
		jwtHeader(token), nil, &resp)
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
			Status:      normalizeStatus(scan.StatusType),
			Description: scan.Status,
			Location:    scan.Location,
			OccurredAt:  scan.ScanTime,
		})
	}

	return ports.TrackingSnapshot{
		ProviderName: ProviderName,
		TrackingID:   trackingID,
		Status:       normalizeStatus(data.StatusType),
		Events:       events,
		RetrievedAt:  time.Now(),
	}, nil
}

// Cancel voids a generated waybill.
func (a *Adapter) Cancel(ctx context.Context, trackingID string) (ports.CancellationResult, error) {
	token, err := a.creds.Token(ctx, a)
	if err != nil {
		return ports.CancellationResult{}, err
	}

	payload := cancelRequest{AWBNo: trackingID}

	var resp cancelResponse
	err = a.client.DoJSON(ctx, ProviderName, http.MethodPost,
		a.cfg.BaseURL+"/in/transportation/waybill/v1/CancelWaybill",
		jwtHeader(token), payload, &resp)
	if err != nil {
		return ports.CancellationResult{}, err
	}

	return ports.CancellationResult{
		TrackingID: trackingID,
		Cancelled:  !resp.IsError,
		Message:    resp.Status,
	}, nil
}

func jwtHeader(token string) map[string]string {
	return map[string]string{"JWTToken": token}
}

func subProductCode(req shipment.Request) string {
	if req.PaymentMode() == shipment.COD {
		return "C"
	}
	return "P"
}

// normalizeStatus maps Blue Dart's two-letter status types into the shared
// vocabulary.
func normalizeStatus(raw string) booking.DeliveryStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PU", "PS":
		return booking.StatusBooked
	case "IT", "AR", "DP":
		return booking.StatusInTransit
	case "OD":
		return booking.StatusOutForDelivery
	case "DL":
		return booking.StatusDelivered
	case "UD", "RT", "RD":
		return booking.StatusException
	case "CA":
		return booking.StatusCancelled
	default:
		return booking.StatusUnknown
	}
}
