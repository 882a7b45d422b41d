// Package ratecardrepo provides data transfer objects and mapping functions
// for rate card persistence. Cards live in two tables: rate_cards holds the
// per-card surcharges and zone metadata, rate_card_slabs holds the weight
// tiers. Zone-keyed values are flattened into one column per zone.
package ratecardrepo

import (
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/domain/model/zone"
)

// RateCardDTO represents the database structure for one provider's rate
// card in one service mode.
type RateCardDTO struct {
	ID                   uint         `gorm:"primaryKey"`
	Provider             string       `gorm:"uniqueIndex:idx_provider_mode"`
	Mode                 int          `gorm:"uniqueIndex:idx_provider_mode"`
	AdditionalRates      ZoneRatesDTO `gorm:"embedded;embeddedPrefix:additional_"`
	CODCharge            float64
	CODPercent           float64
	FuelSurchargePercent float64
	MinBillableUnitKg    float64
	EstimatedDays        ZoneDaysDTO `gorm:"embedded;embeddedPrefix:days_"`
	Slabs                []SlabDTO   `gorm:"foreignKey:RateCardID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for rate card entities.
func (RateCardDTO) TableName() string {
	return "rate_cards"
}

// SlabDTO represents one weight tier of a rate card. Position preserves the
// ascending threshold order the domain requires.
type SlabDTO struct {
	ID          uint `gorm:"primaryKey"`
	RateCardID  uint `gorm:"index"`
	Position    int
	MaxWeightKg float64
	Rates       ZoneRatesDTO `gorm:"embedded;embeddedPrefix:rate_"`
}

// TableName specifies the database table name for slab entities.
func (SlabDTO) TableName() string {
	return "rate_card_slabs"
}

// ZoneRatesDTO flattens a zone-to-rate map into columns.
type ZoneRatesDTO struct {
	SameCity     float64
	SameState    float64
	MetroToMetro float64
	RestOfIndia  float64
	NorthEastJK  float64
}

// ZoneDaysDTO flattens a zone-to-days map into columns.
type ZoneDaysDTO struct {
	SameCity     int
	SameState    int
	MetroToMetro int
	RestOfIndia  int
	NorthEastJK  int
}

func ratesFromMap(rates map[zone.Zone]float64) ZoneRatesDTO {
	return ZoneRatesDTO{
		SameCity:     rates[zone.SameCity],
		SameState:    rates[zone.SameState],
		MetroToMetro: rates[zone.MetroToMetro],
		RestOfIndia:  rates[zone.RestOfIndia],
		NorthEastJK:  rates[zone.NorthEastJK],
	}
}

func (d ZoneRatesDTO) toMap() map[zone.Zone]float64 {
	return map[zone.Zone]float64{
		zone.SameCity:     d.SameCity,
		zone.SameState:    d.SameState,
		zone.MetroToMetro: d.MetroToMetro,
		zone.RestOfIndia:  d.RestOfIndia,
		zone.NorthEastJK:  d.NorthEastJK,
	}
}

func daysFromMap(days map[zone.Zone]int) ZoneDaysDTO {
	return ZoneDaysDTO{
		SameCity:     days[zone.SameCity],
		SameState:    days[zone.SameState],
		MetroToMetro: days[zone.MetroToMetro],
		RestOfIndia:  days[zone.RestOfIndia],
		NorthEastJK:  days[zone.NorthEastJK],
	}
}

func (d ZoneDaysDTO) toMap() map[zone.Zone]int {
	return map[zone.Zone]int{
		zone.SameCity:     d.SameCity,
		zone.SameState:    d.SameState,
		zone.MetroToMetro: d.MetroToMetro,
		zone.RestOfIndia:  d.RestOfIndia,
		zone.NorthEastJK:  d.NorthEastJK,
	}
}

// fromDomain converts a rate card domain object to its database representation.
func fromDomain(card *ratecard.RateCard) RateCardDTO {
	slabs := card.Slabs()
	slabDTOs := make([]SlabDTO, 0, len(slabs))
	for i, slab := range slabs {
		slabDTOs = append(slabDTOs, SlabDTO{
			Position:    i,
			MaxWeightKg: slab.MaxWeightKg,
			Rates:       ratesFromMap(slab.Rates),
		})
	}

	additional := make(map[zone.Zone]float64)
	days := make(map[zone.Zone]int)
	for _, z := range []zone.Zone{zone.SameCity, zone.SameState, zone.MetroToMetro, zone.RestOfIndia, zone.NorthEastJK} {
		if rate, ok := card.AdditionalRate(z); ok {
			additional[z] = rate
		}
		days[z] = card.EstimatedDays(z)
	}

	return RateCardDTO{
		Provider:             card.Provider(),
		Mode:                 int(card.Mode()),
		AdditionalRates:      ratesFromMap(additional),
		CODCharge:            card.CODCharge(),
		CODPercent:           card.CODPercent(),
		FuelSurchargePercent: card.FuelSurchargePercent(),
		MinBillableUnitKg:    card.MinBillableUnitKg(),
		EstimatedDays:        daysFromMap(days),
		Slabs:                slabDTOs,
	}
}

// toDomain converts a database DTO to a rate card through the validating
// constructor.
func toDomain(dto RateCardDTO) (*ratecard.RateCard, error) {
	slabs := make([]ratecard.Slab, 0, len(dto.Slabs))
	for _, slab := range dto.Slabs {
		slabs = append(slabs, ratecard.Slab{
			MaxWeightKg: slab.MaxWeightKg,
			Rates:       slab.Rates.toMap(),
		})
	}

	return ratecard.NewRateCard(ratecard.Config{
		Provider:             dto.Provider,
		Mode:                 quote.ServiceMode(dto.Mode),
		Slabs:                slabs,
		AdditionalRates:      dto.AdditionalRates.toMap(),
		CODCharge:            dto.CODCharge,
		CODPercent:           dto.CODPercent,
		FuelSurchargePercent: dto.FuelSurchargePercent,
		MinBillableUnitKg:    dto.MinBillableUnitKg,
		EstimatedDays:        dto.EstimatedDays.toMap(),
	})
}
