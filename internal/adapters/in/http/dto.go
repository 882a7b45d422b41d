package http

import (
	"time"

	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/ports"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RatesRequest is the payload for POST /api/v1/rates. Mode is optional;
// when set, only quotes for that service mode are returned.
type RatesRequest struct {
	FromPincode          string  `json:"fromPincode"`
	ToPincode            string  `json:"toPincode"`
	WeightKg             float64 `json:"weight"`
	LengthCm             float64 `json:"length"`
	WidthCm              float64 `json:"width"`
	HeightCm             float64 `json:"height"`
	OrderType            string  `json:"orderType"`
	Mode                 string  `json:"mode,omitempty"`
	DeclaredValue        float64 `json:"declaredValue"`
	CODCollectableAmount float64 `json:"codCollectableAmount"`
}

// RatesResponse carries the aggregated rate comparison.
type RatesResponse struct {
	Zone         string        `json:"zone"`
	Calculations []Calculation `json:"calculations"`
}

// Calculation is one provider's priced offer.
type Calculation struct {
	Provider              string    `json:"provider"`
	Mode                  string    `json:"mode"`
	ChargeableWeightKg    float64   `json:"chargeableWeight"`
	EstimatedDeliveryDays int       `json:"estimatedDeliveryDays"`
	Breakdown             Breakdown `json:"breakdown"`
}

// Breakdown itemizes a quote's charges in INR.
type Breakdown struct {
	BaseRate               float64 `json:"baseRate"`
	AdditionalWeightCharge float64 `json:"additionalWeightCharge"`
	CODCharge              float64 `json:"codCharge"`
	FuelSurcharge          float64 `json:"fuelSurcharge"`
	Tax                    float64 `json:"tax"`
	Total                  float64 `json:"total"`
}

// BookRequest is the payload for POST /api/v1/book. ChosenQuote is the
// offer the seller accepted from the rate comparison; the booking is made
// at that rate, never re-priced.
type BookRequest struct {
	OrderID     string       `json:"orderId"`
	Provider    string       `json:"provider"`
	Shipment    RatesRequest `json:"shipment"`
	ChosenQuote Calculation  `json:"chosenQuote"`
}

// BookResponse describes the persisted booking.
type BookResponse struct {
	BookingID    string `json:"bookingId"`
	OrderID      string `json:"orderId"`
	Provider     string `json:"provider"`
	Status       string `json:"status"`
	BookingType  string `json:"bookingType"`
	AWB          string `json:"awb"`
	TrackingURL  string `json:"trackingUrl,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// TrackResponse combines the stored booking state with the provider's live
// tracking snapshot.
type TrackResponse struct {
	TrackingID    string       `json:"trackingId"`
	Provider      string       `json:"provider"`
	BookingStatus string       `json:"bookingStatus"`
	BookingType   string       `json:"bookingType"`
	Status        string       `json:"status"`
	Instructions  string       `json:"instructions,omitempty"`
	Events        []TrackEvent `json:"events"`
	RetrievedAt   time.Time    `json:"retrievedAt"`
}

// TrackEvent is one scan in the tracking history.
type TrackEvent struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// CancelResponse reports the outcome of a cancellation request.
type CancelResponse struct {
	TrackingID string `json:"trackingId"`
	Cancelled  bool   `json:"cancelled"`
	Message    string `json:"message,omitempty"`
}

func ratesResponseFrom(result queries.GetRatesQueryResponse) RatesResponse {
	calculations := make([]Calculation, 0, len(result.Quotes))
	for _, q := range result.Quotes {
		calculations = append(calculations, calculationFrom(q))
	}

	return RatesResponse{
		Zone:         result.Zone.String(),
		Calculations: calculations,
	}
}

func calculationFrom(q quote.RateQuote) Calculation {
	return Calculation{
		Provider:              q.ProviderName,
		Mode:                  q.Mode.String(),
		ChargeableWeightKg:    q.ChargeableWeightKg,
		EstimatedDeliveryDays: q.EstimatedDeliveryDays,
		Breakdown: Breakdown{
			BaseRate:               q.Breakdown.BaseRate,
			AdditionalWeightCharge: q.Breakdown.AdditionalWeightCharge,
			CODCharge:              q.Breakdown.CODCharge,
			FuelSurcharge:          q.Breakdown.FuelSurcharge,
			Tax:                    q.Breakdown.Tax,
			Total:                  q.Breakdown.Total,
		},
	}
}

// rateQuoteFromBody maps an accepted calculation back into the domain
// quote the booking command carries.
func rateQuoteFromBody(c Calculation) (quote.RateQuote, error) {
	mode, err := quote.ParseServiceMode(c.Mode)
	if err != nil {
		return quote.RateQuote{}, err
	}

	return quote.RateQuote{
		ProviderName:          c.Provider,
		Mode:                  mode,
		ChargeableWeightKg:    c.ChargeableWeightKg,
		EstimatedDeliveryDays: c.EstimatedDeliveryDays,
		Breakdown: quote.Breakdown{
			BaseRate:               c.Breakdown.BaseRate,
			AdditionalWeightCharge: c.Breakdown.AdditionalWeightCharge,
			CODCharge:              c.Breakdown.CODCharge,
			FuelSurcharge:          c.Breakdown.FuelSurcharge,
			Tax:                    c.Breakdown.Tax,
			Total:                  c.Breakdown.Total,
		},
	}, nil
}

func bookResponseFrom(aggregate *booking.Booking) BookResponse {
	return BookResponse{
		BookingID:    aggregate.ID().String(),
		OrderID:      aggregate.OrderID().String(),
		Provider:     aggregate.ProviderName(),
		Status:       aggregate.Status().String(),
		BookingType:  aggregate.BookingType().String(),
		AWB:          aggregate.AWB(),
		TrackingURL:  aggregate.TrackingURL(),
		Instructions: aggregate.Instructions(),
	}
}

func trackResponseFrom(result queries.TrackShipmentQueryResponse) TrackResponse {
	events := make([]TrackEvent, 0, len(result.Delivery.Events))
	for _, event := range result.Delivery.Events {
		events = append(events, TrackEvent{
			Status:      event.Status.String(),
			Description: event.Description,
			Location:    event.Location,
			OccurredAt:  event.OccurredAt,
		})
	}

	return TrackResponse{
		TrackingID:    result.TrackingID,
		Provider:      result.ProviderName,
		BookingStatus: result.BookingStatus.String(),
		BookingType:   result.BookingType.String(),
		Status:        result.Delivery.Status.String(),
		Instructions:  result.Instructions,
		Events:        events,
		RetrievedAt:   result.Delivery.RetrievedAt,
	}
}

func cancelResponseFrom(result ports.CancellationResult) CancelResponse {
	return CancelResponse{
		TrackingID: result.TrackingID,
		Cancelled:  result.Cancelled,
		Message:    result.Message,
	}
}
