package services

import (
	"fmt"
	"math"

	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/pkg/errs"
)

// DefaultVolumetricDivisor is the industry-standard divisor converting
// cubic centimetres to volumetric kilograms.
const DefaultVolumetricDivisor = 5000.0

// ChargeableWeightCalculator derives the billable weight of a parcel from
// its actual weight and outer dimensions. Couriers bill the greater of the
// two, so a light but bulky parcel pays for the space it occupies.
//
// The calculator is a pure domain service: no I/O, deterministic output.
type ChargeableWeightCalculator struct {
	divisor float64
}

// NewChargeableWeightCalculator creates a calculator with the given
// volumetric divisor. A non-positive divisor falls back to the default 5000.
func NewChargeableWeightCalculator(divisor float64) ChargeableWeightCalculator {
	if divisor <= 0 {
		divisor = DefaultVolumetricDivisor
	}
	return ChargeableWeightCalculator{divisor: divisor}
}

// Calculate returns max(actual, volumetric) in kilograms, rounded up to
// unitKg when positive so the result aligns with a rate card's slabs.
// Fails with a validation error when the weight or any dimension is
// non-positive.
func (c ChargeableWeightCalculator) Calculate(
	actualKg float64,
	dims shipment.Dimensions,
	unitKg float64,
) (float64, error) {
	if actualKg <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is not greater than 0", actualKg))
	}

	if dims.LengthCm <= 0 || dims.WidthCm <= 0 || dims.HeightCm <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("dimensions are invalid",
			fmt.Errorf("%gx%gx%g cm has a non-positive side", dims.LengthCm, dims.WidthCm, dims.HeightCm))
	}

	volumetricKg := dims.LengthCm * dims.WidthCm * dims.HeightCm / c.divisor

	chargeable := math.Max(actualKg, volumetricKg)
	if unitKg > 0 {
		chargeable = math.Ceil(chargeable/unitKg) * unitKg
	}

	return chargeable, nil
}
