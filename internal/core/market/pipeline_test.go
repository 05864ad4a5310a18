package market

import (
	"math"
	"testing"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/geo"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ptr[T any](v T) *T { return &v }

func ids(rs []Ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func sample() []domain.Listing {
	return []domain.Listing{
		{ID: "0x1", PricePerKWh: 8, EnergyAmountWh: 5000, EnergyType: domain.EnergyWind, Location: "Bandung -6.9175, 107.6191", CreatedAtMs: 300, Active: true},
		{ID: "0x2", PricePerKWh: 12, EnergyAmountWh: 2000, EnergyType: domain.EnergySolar, Location: "Jakarta -6.2, 106.8", CreatedAtMs: 200, Active: true},
		{ID: "0x3", PricePerKWh: 5, EnergyAmountWh: 1000, EnergyType: domain.EnergySolar, Location: "Surabaya", CreatedAtMs: 0, Active: true},
		{ID: "0x4", PricePerKWh: 5, EnergyAmountWh: 1000, EnergyType: domain.EnergyHydro, Location: "Bogor -6.6, 106.8", CreatedAtMs: 400, Active: true},
	}
}

func TestApply_PriceCeilingAndTotal(t *testing.T) {
	out := Apply([]domain.Listing{sample()[0]}, Query{MaxPrice: ptr(int64(10))})

	require.Len(t, out, 1)
	assert.Equal(t, "0x1", out[0].ID)
	assert.Equal(t, int64(40), out[0].TotalPrice())
}

func TestApply_Stages(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"default cheapest first, stable", Query{}, []string{"0x3", "0x4", "0x1", "0x2"}},
		{"newest first, unknown last", Query{Sort: SortNewest}, []string{"0x4", "0x1", "0x2", "0x3"}},
		{"category", Query{EnergyType: ptr(domain.EnergySolar), Sort: SortNewest}, []string{"0x2", "0x3"}},
		{"ceiling", Query{MaxPrice: ptr(int64(8)), Sort: SortNewest}, []string{"0x4", "0x1", "0x3"}},
		{"zero ceiling", Query{MaxPrice: ptr(int64(0))}, []string{}},
		{"location case-insensitive", Query{Location: "  JAKARTA "}, []string{"0x2"}},
		{"exclusion", Query{Exclude: mapset.NewSet("0x4", "0x2"), Sort: SortNewest}, []string{"0x1", "0x3"}},
		{"price asc stable", Query{Sort: SortPriceAsc}, []string{"0x3", "0x4", "0x1", "0x2"}},
		{"pin", Query{PinID: "0x3", Sort: SortNewest}, []string{"0x3", "0x4", "0x1", "0x2"}},
		{"pin absent", Query{PinID: "0x9", Sort: SortNewest}, []string{"0x4", "0x1", "0x2", "0x3"}},
		{"pin excluded", Query{PinID: "0x3", Exclude: mapset.NewSet("0x3"), Sort: SortNewest}, []string{"0x4", "0x1", "0x2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.q)))
		})
	}
}

func TestApply_DistanceSort(t *testing.T) {
	origin := &geo.Point{Lat: -6.2, Lng: 106.8}

	out := Apply(sample(), Query{Origin: origin, Sort: SortDistance})

	assert.Equal(t, []string{"0x2", "0x4", "0x1", "0x3"}, ids(out))
	assert.Zero(t, out[0].DistanceKm)
	assert.True(t, math.IsInf(out[3].DistanceKm, 1))
	assert.False(t, out[3].HasDistance())
}

func TestApply_NoOriginAllUnbounded(t *testing.T) {
	out := Apply(sample(), Query{Sort: SortDistance})

	assert.Equal(t, []string{"0x1", "0x2", "0x3", "0x4"}, ids(out), "ties keep source order")
	for _, r := range out {
		assert.False(t, r.HasDistance())
	}
}

func TestNearestPeers(t *testing.T) {
	origin := &geo.Point{Lat: -6.2, Lng: 106.8}
	listings := sample()

	out := NearestPeers(listings, origin, nil, "0x3", 2)
	assert.Equal(t, []string{"0x3", "0x2"}, ids(out))

	out = NearestPeers(listings, origin, mapset.NewSet("0x2"), "", 0)
	assert.Equal(t, []string{"0x4", "0x1", "0x3"}, ids(out))
}

func TestNewestID(t *testing.T) {
	assert.Equal(t, "0x4", NewestID(sample()))
	assert.Equal(t, "", NewestID(nil))
	assert.Equal(t, "0xa", NewestID([]domain.Listing{{ID: "0xa"}, {ID: "0xb"}}))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("")
	assert.True(t, ok)
	assert.Equal(t, SortPriceAsc, k)

	k, ok = ParseSortKey(" Newest ")
	assert.True(t, ok)
	assert.Equal(t, SortNewest, k)

	_, ok = ParseSortKey("cheapest")
	assert.False(t, ok)
}

func genListings(t *rapid.T) []domain.Listing {
	n := rapid.IntRange(0, 25).Draw(t, "n")
	out := make([]domain.Listing, n)
	for i := range out {
		out[i] = domain.Listing{
			ID:          rapid.StringMatching(`0x[0-9a-f]{1,3}`).Draw(t, "id"),
			PricePerKWh: rapid.Int64Range(0, 50).Draw(t, "price"),
			EnergyType:  domain.EnergyType(rapid.IntRange(0, 3).Draw(t, "type")),
			Location:    rapid.SampledFrom([]string{"Bandung", "-6.2, 106.8", "Jakarta 1, 2", ""}).Draw(t, "loc"),
			CreatedAtMs: rapid.Int64Range(0, 1000).Draw(t, "created"),
		}
	}
	return out
}

func TestApply_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		listings := genListings(t)
		c1 := rapid.Int64Range(0, 50).Draw(t, "c1")
		c2 := rapid.Int64Range(0, c1).Draw(t, "c2")
		sortKey := rapid.SampledFrom([]SortKey{SortPriceAsc, SortDistance, SortNewest}).Draw(t, "sort")

		loose := Apply(listings, Query{MaxPrice: &c1, Sort: sortKey})
		strict := Apply(listings, Query{MaxPrice: &c2, Sort: sortKey})

		if len(loose) > len(listings) {
			t.Fatalf("output larger than input: %d > %d", len(loose), len(listings))
		}
		if len(strict) > len(loose) {
			t.Fatalf("stricter ceiling grew output: %d > %d", len(strict), len(loose))
		}
		for _, r := range loose {
			if r.PricePerKWh > c1 || r.PricePerKWh < 0 {
				t.Fatalf("price %d outside [0, %d]", r.PricePerKWh, c1)
			}
		}
	})
}

func TestApply_PriceSortMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		out := Apply(genListings(t), Query{Sort: SortPriceAsc})
		for i := 1; i < len(out); i++ {
			if out[i-1].PricePerKWh > out[i].PricePerKWh {
				t.Fatalf("not non-decreasing at %d: %d > %d", i, out[i-1].PricePerKWh, out[i].PricePerKWh)
			}
		}
	})
}
