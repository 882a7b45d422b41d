package services

import (
	"fmt"
	"math"

	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/pkg/errs"
)

// GSTPercent is the tax rate applied to courier charges in India.
const GSTPercent = 18.0

// RateCalculator prices a shipment against a provider's rate card.
//
// Pricing algorithm:
//   - Locate the smallest slab whose threshold covers the chargeable weight.
//   - Weight above the top slab bills the top slab plus the per-unit
//     additional rate for each started billable unit of excess.
//   - COD shipments add the flat COD charge plus the COD percentage of the
//     base subtotal.
//   - The fuel surcharge percentage applies to the running subtotal, then
//     GST applies on top.
//   - The final total is rounded to the nearest rupee.
type RateCalculator struct{}

// NewRateCalculator creates a RateCalculator instance.
func NewRateCalculator() RateCalculator {
	return RateCalculator{}
}

// Quote prices the given chargeable weight for a zone. Fails with a
// RateNotFoundError when the card does not price the zone, and with a
// validation error on invalid inputs.
func (rc RateCalculator) Quote(
	card *ratecard.RateCard,
	z zone.Zone,
	chargeableKg float64,
	paymentMode shipment.PaymentMode,
	codAmount float64,
) (quote.RateQuote, error) {
	if err := card.Validate(); err != nil {
		return quote.RateQuote{}, err
	}
	if err := z.Validate(); err != nil {
		return quote.RateQuote{}, err
	}
	if err := paymentMode.Validate(); err != nil {
		return quote.RateQuote{}, err
	}
	if chargeableKg <= 0 {
		return quote.RateQuote{}, errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is not greater than 0", chargeableKg))
	}

	base, additional, err := rc.weightCharges(card, z, chargeableKg)
	if err != nil {
		return quote.RateQuote{}, err
	}

	subtotal := base + additional

	var codCharge float64
	if paymentMode == shipment.COD {
		codCharge = card.CODCharge() + card.CODPercent()/100*subtotal
	}
	_ = codAmount // COD fees are card-driven; the collectable amount rides the booking payload.

	fuel := card.FuelSurchargePercent() / 100 * (subtotal + codCharge)
	tax := GSTPercent / 100 * (subtotal + codCharge + fuel)
	total := math.Round(subtotal + codCharge + fuel + tax)

	return quote.RateQuote{
		ProviderName: card.Provider(),
		Mode:         card.Mode(),
		Breakdown: quote.Breakdown{
			BaseRate:               base,
			AdditionalWeightCharge: additional,
			CODCharge:              codCharge,
			FuelSurcharge:          fuel,
			Tax:                    tax,
			Total:                  total,
		},
		ChargeableWeightKg:    chargeableKg,
		Zone:                  z,
		EstimatedDeliveryDays: card.EstimatedDays(z),
	}, nil
}

// weightCharges returns the slab base rate and any overflow charge for
// weight above the top slab.
func (rc RateCalculator) weightCharges(
	card *ratecard.RateCard,
	z zone.Zone,
	chargeableKg float64,
) (base, additional float64, err error) {
	slabs := card.Slabs()

	for _, slab := range slabs {
		if chargeableKg <= slab.MaxWeightKg {
			rate, ok := slab.Rates[z]
			if !ok {
				return 0, 0, errs.NewRateNotFoundError(card.Provider(), z.String())
			}
			return rate, 0, nil
		}
	}

	// Weight exceeds the top slab: bill the top slab plus the excess,
	// rounded up to whole billable units.
	top := slabs[len(slabs)-1]
	rate, ok := top.Rates[z]
	if !ok {
		return 0, 0, errs.NewRateNotFoundError(card.Provider(), z.String())
	}

	addRate, ok := card.AdditionalRate(z)
	if !ok {
		return 0, 0, errs.NewRateNotFoundError(card.Provider(), z.String())
	}

	excessUnits := math.Ceil((chargeableKg - top.MaxWeightKg) / card.MinBillableUnitKg())
	return rate, excessUnits * addRate, nil
}
