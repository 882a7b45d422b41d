package zone

import (
	"courierhub/internal/core/domain/model/kernel"
)

// PrefixRange is an inclusive range of 2-digit state prefixes.
type PrefixRange struct {
	From string
	To   string
}

// Table holds one provider's zone classification rules. Providers partition
// zones differently, so each adapter owns its own Table.
//
// Resolution is first-match-wins, in this order:
//  1. identical city prefix               -> SameCity
//  2. identical state prefix              -> SameState
//  3. both prefixes in the metro set      -> MetroToMetro
//  4. both prefixes in a special range    -> NorthEastJK
//  5. otherwise                           -> RestOfIndia
//
// Resolution is a pure function of the two pincodes: no I/O, no side effects.
type Table struct {
	metroPrefixes map[string]struct{}
	specialRanges []PrefixRange
}

// NewTable creates a zone table from a set of 3-digit metro city prefixes
// and the 2-digit prefix ranges that price as NorthEastJK.
func NewTable(metroPrefixes []string, specialRanges []PrefixRange) Table {
	metros := make(map[string]struct{}, len(metroPrefixes))
	for _, p := range metroPrefixes {
		metros[p] = struct{}{}
	}

	return Table{
		metroPrefixes: metros,
		specialRanges: specialRanges,
	}
}

// DefaultTable returns the zone table shared by most Indian couriers:
// the eight major metros, and the North-East plus Jammu & Kashmir circles
// as the premium zone.
func DefaultTable() Table {
	return NewTable(
		// Delhi, Mumbai, Ahmedabad, Hyderabad, Pune, Bangalore, Chennai, Kolkata.
		[]string{"110", "400", "380", "500", "411", "560", "600", "700"},
		[]PrefixRange{
			{From: "18", To: "19"}, // Jammu & Kashmir
			{From: "78", To: "79"}, // Assam and the North-East
		},
	)
}

// Resolve classifies an origin-destination pair into a pricing zone.
// Both pincodes must be valid; the result is deterministic.
func (t Table) Resolve(origin, destination kernel.Pincode) (Zone, error) {
	if err := origin.Validate(); err != nil {
		return Unknown, err
	}
	if err := destination.Validate(); err != nil {
		return Unknown, err
	}

	if origin.CityPrefix() == destination.CityPrefix() {
		return SameCity, nil
	}

	if origin.StatePrefix() == destination.StatePrefix() {
		return SameState, nil
	}

	if t.isMetro(origin) && t.isMetro(destination) {
		return MetroToMetro, nil
	}

	if t.isSpecial(origin) && t.isSpecial(destination) {
		return NorthEastJK, nil
	}

	return RestOfIndia, nil
}

func (t Table) isMetro(pin kernel.Pincode) bool {
	_, ok := t.metroPrefixes[pin.CityPrefix()]
	return ok
}

func (t Table) isSpecial(pin kernel.Pincode) bool {
	prefix := pin.StatePrefix()
	for _, r := range t.specialRanges {
		if prefix >= r.From && prefix <= r.To {
			return true
		}
	}
	return false
}
