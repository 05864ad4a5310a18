package dto

import (
	"math"
	"strings"
	"testing"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/market"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := CreateListingRequest{
		EnergyType: "  solar ",
		Location:   "  52.52,13.40  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "solar", req.EnergyType)
	assert.Equal(t, "52.52,13.40", req.Location)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := CreateListingRequest{Location: "Berlin <script>alert('x')</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.Location, "&lt;script&gt;")
	assert.NotContains(t, req.Location, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	s := "  Hamburg  "
	v := struct {
		Location *string
		Note     *string
	}{Location: &s}
	SanitizeStruct(&v)

	assert.Equal(t, "Hamburg", *v.Location)
	assert.Nil(t, v.Note)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestObjectID(t *testing.T) {
	valid := []string{"0x1", "0xabc", "0xABCDEF0123456789", "0x" + strings.Repeat("f", 64)}
	for _, tc := range valid {
		assert.True(t, IsObjectID(tc), "expected valid: %s", tc)
	}

	invalid := []string{
		"",
		"0x",
		"abc",     // missing prefix
		"0xzz",    // not hex
		"0x12 34", // space
		"0x" + strings.Repeat("a", 65),
		"0x1;DROP",
	}
	for _, tc := range invalid {
		assert.False(t, IsObjectID(tc), "expected invalid: %s", tc)
	}
}

func TestBindingValidators(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{"valid listing", CreateListingRequest{EnergyAmountWh: 5000, PricePerKWh: 2, EnergyType: "wind", Location: "Oslo"}, false},
		{"numeric energy type", CreateListingRequest{EnergyAmountWh: 5000, PricePerKWh: 2, EnergyType: "3", Location: "Oslo"}, false},
		{"unknown energy type", CreateListingRequest{EnergyAmountWh: 5000, PricePerKWh: 2, EnergyType: "coal", Location: "Oslo"}, true},
		{"zero amount", CreateListingRequest{PricePerKWh: 2, EnergyType: "wind", Location: "Oslo"}, true},
		{"valid buy", BuyRequest{ListingID: "0xabc"}, false},
		{"buy with bad listing id", BuyRequest{ListingID: "listing-1"}, true},
		{"buy with bad profile id", BuyRequest{ListingID: "0xabc", ProfileID: "p"}, true},
		{"price without listing", UpdatePriceRequest{NewPrice: 3}, true},
		{"bad sort", BrowseQuery{Sort: "random"}, true},
		{"empty browse", BrowseQuery{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBrowseQuery_Query(t *testing.T) {
	maxPrice := int64(7)
	q := BrowseQuery{
		EnergyType: "Hydro",
		MaxPrice:   &maxPrice,
		Location:   "berlin",
		Origin:     "52.52,13.40",
		Sort:       "newest",
		Pin:        "0x1",
	}.Query()

	require.NotNil(t, q.EnergyType)
	assert.Equal(t, domain.EnergyHydro, *q.EnergyType)
	assert.Equal(t, &maxPrice, q.MaxPrice)
	assert.Equal(t, market.SortNewest, q.Sort)
	assert.Equal(t, "0x1", q.PinID)
	require.NotNil(t, q.Origin)

	empty := BrowseQuery{Origin: "somewhere"}.Query()
	assert.Nil(t, empty.EnergyType)
	assert.Nil(t, empty.Origin)
	assert.Equal(t, market.SortPriceAsc, empty.Sort)
}

func TestCreateListingRequest_Action(t *testing.T) {
	a := CreateListingRequest{EnergyAmountWh: 2500, PricePerKWh: 4, EnergyType: "grid", Location: "Rome"}.Action()

	assert.Equal(t, domain.ActionCreateListing, a.Kind)
	assert.Equal(t, domain.EnergyGrid, a.EnergyType)
	assert.NoError(t, a.Validate())
}

func TestNewRankedResponses(t *testing.T) {
	ranked := []market.Ranked{
		{Listing: domain.Listing{ID: "0x1", EnergyAmountWh: 1500, PricePerKWh: 3}, DistanceKm: 0.4},
		{Listing: domain.Listing{ID: "0x2"}, DistanceKm: math.Inf(1)},
	}
	out := NewRankedResponses(ranked)

	require.Len(t, out, 2)
	assert.Equal(t, "1.50", out[0].EnergyKWh)
	assert.Equal(t, int64(3), out[0].TotalPrice)
	require.NotNil(t, out[0].DistanceKm)
	assert.NotEmpty(t, out[0].Distance)
	assert.Nil(t, out[1].DistanceKm)
	assert.Empty(t, out[1].Distance)
}
