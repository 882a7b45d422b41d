package cmd

import (
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/domain/model/zone"
)

// DefaultRateCards returns the negotiated cards for the card-priced
// couriers, used to seed an empty database on first run. Operator edits in
// the rate_cards tables take precedence afterwards.
func DefaultRateCards() ([]*ratecard.RateCard, error) {
	xpressbees, err := ratecard.NewRateCard(ratecard.Config{
		Provider: "xpressbees",
		Mode:     quote.Surface,
		Slabs: []ratecard.Slab{
			{MaxWeightKg: 0.5, Rates: map[zone.Zone]float64{
				zone.SameCity:     27,
				zone.SameState:    30,
				zone.MetroToMetro: 33,
				zone.RestOfIndia:  38,
				zone.NorthEastJK:  48,
			}},
			{MaxWeightKg: 1.0, Rates: map[zone.Zone]float64{
				zone.SameCity:     45,
				zone.SameState:    51,
				zone.MetroToMetro: 58,
				zone.RestOfIndia:  68,
				zone.NorthEastJK:  89,
			}},
		},
		AdditionalRates: map[zone.Zone]float64{
			zone.SameCity:     22,
			zone.SameState:    25,
			zone.MetroToMetro: 28,
			zone.RestOfIndia:  33,
			zone.NorthEastJK:  43,
		},
		CODCharge:            35,
		CODPercent:           1.75,
		FuelSurchargePercent: 21,
		MinBillableUnitKg:    0.5,
		EstimatedDays: map[zone.Zone]int{
			zone.SameCity:     1,
			zone.SameState:    2,
			zone.MetroToMetro: 3,
			zone.RestOfIndia:  5,
			zone.NorthEastJK:  7,
		},
	})
	if err != nil {
		return nil, err
	}

	ecomexpress, err := ratecard.NewRateCard(ratecard.Config{
		Provider: "ecomexpress",
		Mode:     quote.Surface,
		Slabs: []ratecard.Slab{
			{MaxWeightKg: 0.5, Rates: map[zone.Zone]float64{
				zone.SameCity:     29,
				zone.SameState:    32,
				zone.MetroToMetro: 36,
				zone.RestOfIndia:  41,
				zone.NorthEastJK:  52,
			}},
			{MaxWeightKg: 1.0, Rates: map[zone.Zone]float64{
				zone.SameCity:     48,
				zone.SameState:    54,
				zone.MetroToMetro: 62,
				zone.RestOfIndia:  72,
				zone.NorthEastJK:  94,
			}},
		},
		AdditionalRates: map[zone.Zone]float64{
			zone.SameCity:     24,
			zone.SameState:    27,
			zone.MetroToMetro: 30,
			zone.RestOfIndia:  35,
			zone.NorthEastJK:  46,
		},
		CODCharge:            30,
		CODPercent:           1.5,
		FuelSurchargePercent: 19,
		MinBillableUnitKg:    0.5,
		EstimatedDays: map[zone.Zone]int{
			zone.SameCity:     1,
			zone.SameState:    2,
			zone.MetroToMetro: 3,
			zone.RestOfIndia:  5,
			zone.NorthEastJK:  8,
		},
	})
	if err != nil {
		return nil, err
	}

	return []*ratecard.RateCard{xpressbees, ecomexpress}, nil
}
