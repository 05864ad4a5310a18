package service

import (
	"io"
	"strconv"

	"energy-marketplace/internal/core/domain"

	"github.com/rs/zerolog"
)

const (
	testPackage     = "0xpkg"
	testMarketplace = "0xmarket"
	testAccount     = "0xa11ce"
)

var testMarket = domain.Market{PackageID: testPackage, Module: "marketplace", MarketplaceID: testMarketplace}

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func listingObj(id string, price int64, active bool, owner string) domain.ObjectRecord {
	rec := domain.ObjectRecord{
		ObjectID: id,
		Content: &domain.MoveContent{
			DataType: "moveObject",
			Type:     testMarket.StructType(domain.StructListing),
			Fields: map[string]any{
				"energy_amount": "5000",
				"price_per_kwh": strconv.FormatInt(price, 10),
				"energy_type":   float64(0),
				"location":      "Jakarta -6.2, 106.8",
				"timestamp":     "1700000000",
				"is_active":     active,
			},
		},
	}
	if owner != "" {
		rec.Owner = domain.Owner{Kind: domain.OwnerAddress, Address: owner}
	} else {
		rec.Owner = domain.Owner{Kind: domain.OwnerShared}
	}
	return rec
}

func profileObj(id, owner string) domain.ObjectRecord {
	return domain.ObjectRecord{
		ObjectID: id,
		Owner:    domain.Owner{Kind: domain.OwnerAddress, Address: owner},
		Content: &domain.MoveContent{
			DataType: "moveObject",
			Fields:   map[string]any{"owner": owner, "total_sold": "0", "total_bought": "0", "total_earned": "0", "total_spent": "0"},
		},
	}
}

func txObj(id, listingID, buyer, seller string, ts int64) domain.ObjectRecord {
	return domain.ObjectRecord{
		ObjectID: id,
		Owner:    domain.Owner{Kind: domain.OwnerAddress, Address: buyer},
		Content: &domain.MoveContent{
			DataType: "moveObject",
			Fields: map[string]any{
				"listing_id":    listingID,
				"buyer":         buyer,
				"seller":        seller,
				"energy_amount": "2000",
				"total_price":   "20",
				"energy_type":   float64(1),
				"timestamp":     strconv.FormatInt(ts, 10),
			},
		},
	}
}

func createdEvent(listingID string, ts int64) domain.EventEntry {
	return domain.EventEntry{
		Type:        testMarket.EventType(domain.EventListingCreated),
		ParsedJSON:  map[string]any{"listing_id": listingID},
		TimestampMs: ts,
	}
}

func purchaseEvent(listingID, buyer, seller string, ts int64) domain.EventEntry {
	return domain.EventEntry{
		Type: testMarket.EventType(domain.EventEnergyPurchase),
		ParsedJSON: map[string]any{
			"listing_id":    listingID,
			"buyer":         buyer,
			"seller":        seller,
			"energy_amount": "2000",
			"total_price":   "20",
		},
		TimestampMs: ts,
	}
}

func listingIDs(ls []domain.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}
