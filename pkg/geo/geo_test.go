package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineKm(-6.2, 106.8, -6.2, 106.8))
	})

	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		want := 2 * math.Pi * EarthRadiusKm / 360
		assert.InDelta(t, want, HaversineKm(0, 0, 0, 1), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineKm(-6.2, 106.8, -6.9, 107.6)
		b := HaversineKm(-6.9, 107.6, -6.2, 106.8)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("antipodal points do not produce NaN", func(t *testing.T) {
		d := HaversineKm(0, 0, 0, 180)
		assert.False(t, math.IsNaN(d))
		assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
	})

	t.Run("closer point has smaller distance", func(t *testing.T) {
		near := HaversineKm(-6.2, 106.8, -6.21, 106.81)
		far := HaversineKm(-6.2, 106.8, -6.25, 106.85)
		assert.Less(t, near, far)
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 12.3, Round(12.345, 1))
	assert.Equal(t, 111.2, Round(111.19492664, 1))
	assert.Equal(t, 0.0, Round(0.04, 1))
	assert.Equal(t, 3.0, Round(2.96, 1))
}

func TestValidLatLng(t *testing.T) {
	assert.True(t, ValidLatLng(0, 0))
	assert.True(t, ValidLatLng(-90, 180))
	assert.False(t, ValidLatLng(90.1, 0))
	assert.False(t, ValidLatLng(0, -180.5))
	assert.False(t, ValidLatLng(math.NaN(), 0))
}
