// Package quote defines the rate quote read model produced by the rate
// aggregation engine. Quotes are ephemeral: they are computed per request,
// compared by the caller, and never persisted.
package quote

import (
	"courierhub/internal/core/domain/model/zone"
)

// Breakdown itemizes the charges that make up a quoted total, in INR.
type Breakdown struct {
	BaseRate               float64
	AdditionalWeightCharge float64
	CODCharge              float64
	FuelSurcharge          float64
	Tax                    float64
	Total                  float64
}

// RateQuote is one provider's price for a shipment. Quotes from different
// providers are comparable: chargeable weight and zone are normalized by
// the engine before pricing.
type RateQuote struct {
	ProviderName          string
	Mode                  ServiceMode
	Breakdown             Breakdown
	ChargeableWeightKg    float64
	Zone                  zone.Zone
	EstimatedDeliveryDays int
}
