package zone

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// Zone classifies an origin-destination pincode pair for pricing.
// It is derived per request and never persisted.
type Zone int

const (
	// Unknown represents an invalid or undefined zone.
	// This value (0) helps catch uninitialized Zone values.
	Unknown Zone = iota

	// SameCity covers pairs within one sorting district.
	SameCity

	// SameState covers pairs within one postal circle.
	SameState

	// MetroToMetro covers pairs between two configured metro cities.
	MetroToMetro

	// RestOfIndia covers all pairs not matched by a more specific zone.
	RestOfIndia

	// NorthEastJK covers pairs where both ends lie in the North-East or
	// Jammu & Kashmir postal ranges, which carry premium pricing.
	NorthEastJK
)

func getZoneStrings() map[Zone]string {
	return map[Zone]string{
		Unknown:      "Unknown",
		SameCity:     "SameCity",
		SameState:    "SameState",
		MetroToMetro: "MetroToMetro",
		RestOfIndia:  "RestOfIndia",
		NorthEastJK:  "NorthEastJK",
	}
}

// Validate checks if the Zone value is valid.
func (z Zone) Validate() error {
	if z < SameCity || z > NorthEastJK {
		return errs.NewValueIsInvalidErrorWithCause("zone is invalid",
			fmt.Errorf("%d is not a valid zone", z))
	}
	return nil
}

// String returns the human-readable name of the zone.
func (z Zone) String() string {
	if str, ok := getZoneStrings()[z]; ok {
		return str
	}
	return "Unknown"
}
