package services_test

import (
	"testing"

	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeableWeightCalculator_Calculate(t *testing.T) {
	calc := services.NewChargeableWeightCalculator(services.DefaultVolumetricDivisor)

	t.Run("actual weight wins for dense parcel", func(t *testing.T) {
		// 10x10x10 cm is 0.2 volumetric kg, far below the 1.5 kg actual.
		got, err := calc.Calculate(1.5, shipment.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10}, 0.5)

		require.NoError(t, err)
		assert.InDelta(t, 1.5, got, 1e-9)
	})

	t.Run("volumetric weight wins for bulky parcel", func(t *testing.T) {
		// 50x40x30 cm is 12 volumetric kg against 2 kg actual.
		got, err := calc.Calculate(2, shipment.Dimensions{LengthCm: 50, WidthCm: 40, HeightCm: 30}, 0.5)

		require.NoError(t, err)
		assert.InDelta(t, 12.0, got, 1e-9)
	})

	t.Run("rounds up to the billable unit", func(t *testing.T) {
		// 30x20x20 cm is 2.4 volumetric kg, billed as 2.5.
		got, err := calc.Calculate(1, shipment.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 20}, 0.5)

		require.NoError(t, err)
		assert.InDelta(t, 2.5, got, 1e-9)
	})

	t.Run("exact unit boundary does not round up", func(t *testing.T) {
		got, err := calc.Calculate(1.5, shipment.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10}, 0.5)

		require.NoError(t, err)
		assert.InDelta(t, 1.5, got, 1e-9)
	})

	t.Run("zero unit skips rounding", func(t *testing.T) {
		got, err := calc.Calculate(1, shipment.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 20}, 0)

		require.NoError(t, err)
		assert.InDelta(t, 2.4, got, 1e-9)
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, err := calc.Calculate(0, shipment.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10}, 0.5)

		require.Error(t, err)
	})

	t.Run("rejects non-positive dimension", func(t *testing.T) {
		_, err := calc.Calculate(1, shipment.Dimensions{LengthCm: 10, WidthCm: 0, HeightCm: 10}, 0.5)

		require.Error(t, err)
	})
}

func TestNewChargeableWeightCalculator_DivisorFallback(t *testing.T) {
	calc := services.NewChargeableWeightCalculator(0)

	// Falls back to the standard 5000 divisor.
	got, err := calc.Calculate(1, shipment.Dimensions{LengthCm: 50, WidthCm: 40, HeightCm: 30}, 0)

	require.NoError(t, err)
	assert.InDelta(t, 12.0, got, 1e-9)
}
