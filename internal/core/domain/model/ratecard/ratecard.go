// Package ratecard defines the tiered rate tables used to price shipments
// for couriers billed from internal cards. A card is loaded at startup,
// may be hot-reloaded by the reload job, and is read-only during a request.
package ratecard

import (
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

// ErrRateCardIsNotConstructed is returned when a RateCard was not created
// through the NewRateCard constructor.
var ErrRateCardIsNotConstructed = errors.New("RateCard must be created via NewRateCard constructor")

// Slab is one weight tier of a rate card. MaxWeightKg is the inclusive
// upper bound of the tier; Rates maps each priced zone to the tier's base
// rate in INR.
type Slab struct {
	MaxWeightKg float64
	Rates       map[zone.Zone]float64
}

// RateCard is a provider's tiered rate table for one service mode.
//
// Invariants:
//   - At least one slab, with strictly increasing weight thresholds
//   - Minimum billable unit is positive
//   - Surcharge percentages are non-negative
//
// Weights above the top slab are billed at the top slab's rate plus the
// per-unit additional rate for each started billable unit of excess.
type RateCard struct { //nolint:recvcheck //using for validation
	provider          string
	mode              quote.ServiceMode
	slabs             []Slab
	additionalRates   map[zone.Zone]float64
	codCharge         float64
	codPercent        float64
	fuelPercent       float64
	minBillableUnitKg float64
	estimatedDays     map[zone.Zone]int

	guard guard.ConstructorGuard
}

// Config carries the raw values for a rate card. It keeps NewRateCard
// readable where cards are assembled from storage or fixtures.
type Config struct {
	Provider             string
	Mode                 quote.ServiceMode
	Slabs                []Slab
	AdditionalRates      map[zone.Zone]float64
	CODCharge            float64
	CODPercent           float64
	FuelSurchargePercent float64
	MinBillableUnitKg    float64
	EstimatedDays        map[zone.Zone]int
}

// NewRateCard creates a validated rate card from raw configuration.
func NewRateCard(cfg Config) (*RateCard, error) {
	card := &RateCard{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		card.setProvider(cfg.Provider, cfg.Mode),
		card.setSlabs(cfg.Slabs, cfg.AdditionalRates),
		card.setCharges(cfg.CODCharge, cfg.CODPercent, cfg.FuelSurchargePercent),
		card.setBillableUnit(cfg.MinBillableUnitKg),
	); err != nil {
		return nil, err
	}

	card.estimatedDays = cfg.EstimatedDays
	return card, nil
}

// Validate ensures the RateCard was created through NewRateCard.
func (c *RateCard) Validate() error {
	if c == nil {
		return ErrRateCardIsNotConstructed
	}
	return c.guard.Validate(ErrRateCardIsNotConstructed)
}

// Provider returns the courier this card prices for.
func (c *RateCard) Provider() string {
	return c.provider
}

// Mode returns the service mode this card prices for.
func (c *RateCard) Mode() quote.ServiceMode {
	return c.mode
}

// Slabs returns the weight tiers in ascending threshold order.
func (c *RateCard) Slabs() []Slab {
	return c.slabs
}

// AdditionalRate returns the per-unit rate billed for weight above the top
// slab in the given zone. The second return reports whether the zone is priced.
func (c *RateCard) AdditionalRate(z zone.Zone) (float64, bool) {
	rate, ok := c.additionalRates[z]
	return rate, ok
}

// CODCharge returns the flat COD handling fee in INR.
func (c *RateCard) CODCharge() float64 {
	return c.codCharge
}

// CODPercent returns the COD fee percentage applied to the base subtotal.
func (c *RateCard) CODPercent() float64 {
	return c.codPercent
}

// FuelSurchargePercent returns the fuel surcharge percentage applied to
// the running subtotal.
func (c *RateCard) FuelSurchargePercent() float64 {
	return c.fuelPercent
}

// MinBillableUnitKg returns the weight granularity the card bills in,
// typically 0.5 kg. Chargeable weights are rounded up to this unit.
func (c *RateCard) MinBillableUnitKg() float64 {
	return c.minBillableUnitKg
}

// EstimatedDays returns the delivery estimate for a zone, falling back to
// the RestOfIndia estimate when the zone has none configured.
func (c *RateCard) EstimatedDays(z zone.Zone) int {
	if days, ok := c.estimatedDays[z]; ok {
		return days
	}
	return c.estimatedDays[zone.RestOfIndia]
}

func (c *RateCard) setProvider(provider string, mode quote.ServiceMode) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}
	if err := mode.Validate(); err != nil {
		return err
	}

	c.provider = provider
	c.mode = mode
	return nil
}

func (c *RateCard) setSlabs(slabs []Slab, additionalRates map[zone.Zone]float64) error {
	if len(slabs) == 0 {
		return errs.NewValueIsRequiredError("slabs")
	}

	prev := 0.0
	for i, slab := range slabs {
		if slab.MaxWeightKg <= prev {
			return errs.NewValueIsInvalidErrorWithCause("slabs",
				fmt.Errorf("slab %d threshold %g is not greater than %g", i, slab.MaxWeightKg, prev))
		}
		if len(slab.Rates) == 0 {
			return errs.NewValueIsInvalidErrorWithCause("slabs",
				fmt.Errorf("slab %d has no zone rates", i))
		}
		prev = slab.MaxWeightKg
	}

	c.slabs = slabs
	c.additionalRates = additionalRates
	return nil
}

func (c *RateCard) setCharges(codCharge, codPercent, fuelPercent float64) error {
	if codCharge < 0 || codPercent < 0 || fuelPercent < 0 {
		return errs.NewValueIsInvalidError("surcharges")
	}

	c.codCharge = codCharge
	c.codPercent = codPercent
	c.fuelPercent = fuelPercent
	return nil
}

func (c *RateCard) setBillableUnit(unitKg float64) error {
	if unitKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("minimum billable unit",
			fmt.Errorf("%g is not greater than 0", unitKg))
	}

	c.minBillableUnitKg = unitKg
	return nil
}
