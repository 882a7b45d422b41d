package zone_test

import (
	"testing"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPincode(t *testing.T, value string) kernel.Pincode {
	t.Helper()
	pin, err := kernel.NewPincode(value)
	require.NoError(t, err)
	return pin
}

func TestTable_Resolve(t *testing.T) {
	table := zone.DefaultTable()

	tests := []struct {
		name        string
		origin      string
		destination string
		want        zone.Zone
	}{
		{"same city prefix", "110001", "110092", zone.SameCity},
		{"same state prefix", "302001", "305001", zone.SameState},
		{"two metros", "110001", "400001", zone.MetroToMetro},
		{"metro to non-metro", "110001", "302001", zone.RestOfIndia},
		{"within north east", "781001", "793001", zone.NorthEastJK},
		{"within jammu kashmir", "180001", "190001", zone.NorthEastJK},
		{"rest of india", "302001", "682001", zone.RestOfIndia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Resolve(mustPincode(t, tt.origin), mustPincode(t, tt.destination))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_Resolve_FirstMatchWins(t *testing.T) {
	table := zone.DefaultTable()

	t.Run("same city beats metro pair", func(t *testing.T) {
		// Both pincodes are Delhi metro, but the identical city prefix
		// classifies first.
		got, err := table.Resolve(mustPincode(t, "110001"), mustPincode(t, "110092"))

		require.NoError(t, err)
		assert.Equal(t, zone.SameCity, got)
	})

	t.Run("same state beats special range", func(t *testing.T) {
		// Both pincodes sit in the north east range and share the state
		// prefix; same state classifies first.
		got, err := table.Resolve(mustPincode(t, "781001"), mustPincode(t, "784001"))

		require.NoError(t, err)
		assert.Equal(t, zone.SameState, got)
	})

	t.Run("only one side in special range prices as rest of india", func(t *testing.T) {
		got, err := table.Resolve(mustPincode(t, "302001"), mustPincode(t, "781001"))

		require.NoError(t, err)
		assert.Equal(t, zone.RestOfIndia, got)
	})
}

func TestTable_Resolve_InvalidPincode(t *testing.T) {
	table := zone.DefaultTable()
	var zero kernel.Pincode

	_, err := table.Resolve(zero, mustPincode(t, "110001"))

	require.Error(t, err)
}

func TestZone_Validate(t *testing.T) {
	t.Run("should validate known zones", func(t *testing.T) {
		for _, z := range []zone.Zone{
			zone.SameCity, zone.SameState, zone.MetroToMetro, zone.RestOfIndia, zone.NorthEastJK,
		} {
			require.NoError(t, z.Validate())
		}
	})

	t.Run("should reject unknown zone", func(t *testing.T) {
		require.Error(t, zone.Unknown.Validate())
		require.Error(t, zone.Zone(99).Validate())
	})
}
