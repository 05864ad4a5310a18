package decode

import (
	"encoding/json"
	"testing"

	"energy-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingRecord(t *testing.T, raw string) *domain.ObjectRecord {
	t.Helper()
	var rec domain.ObjectRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return &rec
}

func TestListing_FullRecord(t *testing.T) {
	rec := listingRecord(t, `{
		"objectId": "0x1",
		"owner": {"AddressOwner": "0xseller"},
		"content": {"dataType": "moveObject", "fields": {
			"energy_amount": "5000", "price_per_kwh": "8", "energy_type": 1,
			"location": "-6.2, 106.8", "timestamp": "1700000000", "is_active": true
		}}
	}`)

	l, ok := Listing(rec)
	require.True(t, ok)
	assert.Equal(t, domain.Listing{
		ID:             "0x1",
		Seller:         "0xseller",
		EnergyAmountWh: 5000,
		PricePerKWh:    8,
		EnergyType:     domain.EnergyWind,
		Location:       "-6.2, 106.8",
		ChainTimestamp: 1700000000,
		Active:         true,
	}, l)
}

func TestListing_Defaults(t *testing.T) {
	rec := listingRecord(t, `{"objectId": "0x2", "content": {"dataType": "moveObject", "fields": {}}}`)

	l, ok := Listing(rec)
	require.True(t, ok)
	assert.Equal(t, "0x2", l.ID)
	assert.Zero(t, l.EnergyAmountWh)
	assert.Zero(t, l.PricePerKWh)
	assert.False(t, l.Active)
	assert.Empty(t, l.Seller)
}

func TestListing_NonAddressOwnerHasNoSeller(t *testing.T) {
	for _, owner := range []string{`{"Shared": {"initial_shared_version": 1}}`, `"Immutable"`, `{"ObjectOwner": "0xparent"}`} {
		rec := listingRecord(t, `{"objectId": "0x3", "owner": `+owner+`,
			"content": {"dataType": "moveObject", "fields": {"is_active": true}}}`)

		l, ok := Listing(rec)
		require.True(t, ok)
		assert.Empty(t, l.Seller, owner)
	}
}

func TestListing_NotAMoveObject(t *testing.T) {
	_, ok := Listing(listingRecord(t, `{"objectId": "0x4", "content": {"dataType": "package"}}`))
	assert.False(t, ok)

	_, ok = Listing(listingRecord(t, `{"objectId": "0x5"}`))
	assert.False(t, ok)

	_, ok = Listing(nil)
	assert.False(t, ok)
}

func TestListing_ByteLocation(t *testing.T) {
	rec := listingRecord(t, `{"objectId": "0x6", "content": {"dataType": "moveObject",
		"fields": {"location": [66, 97, 110, 100, 117, 110, 103]}}}`)

	l := Listings([]domain.ObjectRecord{*rec})
	require.Len(t, l, 1)
	assert.Equal(t, "Bandung", l[0].Location)
}

func TestText(t *testing.T) {
	assert.Equal(t, "abc", Text("abc"))
	assert.Equal(t, "Hi", Text([]any{float64(72), float64(105)}))
	assert.Equal(t, "255,254", Text([]any{float64(255), float64(254)}), "invalid UTF-8 falls back to the stringified bytes")
	assert.Equal(t, "1,x", Text([]any{float64(1), "x"}))
	assert.Equal(t, "", Text(nil))
}

func TestInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"string", "5000", 5000},
		{"padded string", " 12 ", 12},
		{"float", float64(3), 3},
		{"json number", json.Number("77"), 77},
		{"huge u64", "18446744073709551615", 9223372036854775807},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Int64(tt.in))
		})
	}
}

func TestObjectID(t *testing.T) {
	assert.Equal(t, "0x1", ObjectID("0x1"))
	assert.Equal(t, "0x2", ObjectID(map[string]any{"id": "0x2"}))
	assert.Equal(t, "0x3", ObjectID(map[string]any{"objectId": "0x3"}))
	assert.Equal(t, "0x4", ObjectID(map[string]any{"ObjectID": "0x4"}))
	assert.Equal(t, "0x5", ObjectID(map[string]any{"id": map[string]any{"id": "0x5"}}))
	assert.Equal(t, "", ObjectID(float64(1)))
	assert.Equal(t, "", ObjectID(map[string]any{"other": "0x6"}))
}

func TestTransactionAndProfile(t *testing.T) {
	txRec := listingRecord(t, `{"objectId": "0xt", "content": {"dataType": "moveObject", "fields": {
		"listing_id": "0x1", "buyer": "0xb", "seller": "0xs", "energy_amount": "5000",
		"total_price": "40", "energy_type": 2, "timestamp": "1700000000"}}}`)

	tx, ok := Transaction(txRec)
	require.True(t, ok)
	assert.Equal(t, "0x1", tx.ListingID)
	assert.Equal(t, int64(40), tx.TotalPrice)
	assert.Equal(t, domain.EnergyHydro, tx.EnergyType)
	assert.Len(t, Transactions([]domain.ObjectRecord{*txRec, {ObjectID: "0xbad"}}), 1)

	pRec := listingRecord(t, `{"objectId": "0xp", "owner": {"AddressOwner": "0xme"},
		"content": {"dataType": "moveObject", "fields": {"total_sold": "10", "total_spent": "4"}}}`)
	p, ok := Profile(pRec)
	require.True(t, ok)
	assert.Equal(t, "0xme", p.Owner)
	assert.Equal(t, int64(10), p.TotalSold)
	assert.Equal(t, int64(4), p.TotalSpent)
}
