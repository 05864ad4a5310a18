package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		in   string
		want Point
		ok   bool
	}{
		{"-6.2, 106.8", Point{Lat: -6.2, Lng: 106.8}, true},
		{"Bandung (-6.9175,107.6191)", Point{Lat: -6.9175, Lng: 107.6191}, true},
		{"48 ,  2", Point{Lat: 48, Lng: 2}, true},
		{"Jakarta", Point{}, false},
		{"", Point{}, false},
		{"12.5", Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCoordinates(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistanceKm_KnownPair(t *testing.T) {
	// Jakarta -> Bandung, about 120 km.
	d := DistanceKm(-6.2, 106.8, -6.9175, 107.6191)
	assert.InDelta(t, 120, d, 10)
}

func TestDistanceKm_IdentityAndSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lat1 := rapid.Float64Range(-90, 90).Draw(t, "lat1")
		lon1 := rapid.Float64Range(-180, 180).Draw(t, "lon1")
		lat2 := rapid.Float64Range(-90, 90).Draw(t, "lat2")
		lon2 := rapid.Float64Range(-180, 180).Draw(t, "lon2")

		if d := DistanceKm(lat1, lon1, lat1, lon1); d != 0 {
			t.Fatalf("distance to self = %v", d)
		}
		ab := DistanceKm(lat1, lon1, lat2, lon2)
		ba := DistanceKm(lat2, lon2, lat1, lon1)
		if math.IsNaN(ab) {
			t.Fatalf("NaN distance")
		}
		if math.Abs(ab-ba) > 1e-6 {
			t.Fatalf("asymmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > math.Pi*EarthRadiusKm+1e-6 {
			t.Fatalf("out of range: %v", ab)
		}
	})
}

func TestBetween_Unbounded(t *testing.T) {
	origin := &Point{Lat: -6.2, Lng: 106.8}

	assert.True(t, math.IsInf(Between(nil, "-6.2, 106.8"), 1))
	assert.True(t, math.IsInf(Between(origin, "Jakarta"), 1))
	assert.Zero(t, Between(origin, "-6.2, 106.8"))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "N/A", FormatDistance(math.Inf(1)))
	assert.Equal(t, "12.3 km", FormatDistance(12.34))
	assert.Equal(t, "0.0 km", FormatDistance(0))
}
