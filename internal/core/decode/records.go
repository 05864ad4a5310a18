package decode

import (
	"energy-marketplace/internal/core/domain"
)

const moveObject = "moveObject"

func moveFields(rec *domain.ObjectRecord) (map[string]any, bool) {
	if rec == nil || rec.Content == nil || rec.Content.DataType != moveObject || rec.Content.Fields == nil {
		return nil, false
	}
	return rec.Content.Fields, true
}

// Listing normalizes an EnergyListing object. It fails only when the record carries no
// Move object content; every missing field takes its zero value. The seller is the
// address owner of the object; any other ownership shape leaves it empty.
// CreatedAtMs is left for the caller to attach.
func Listing(rec *domain.ObjectRecord) (domain.Listing, bool) {
	fields, ok := moveFields(rec)
	if !ok {
		return domain.Listing{}, false
	}
	l := domain.Listing{
		ID:             rec.ObjectID,
		EnergyAmountWh: Int64(fields["energy_amount"]),
		PricePerKWh:    Int64(fields["price_per_kwh"]),
		EnergyType:     domain.EnergyType(Int64(fields["energy_type"])),
		Location:       Text(fields["location"]),
		ChainTimestamp: Int64(fields["timestamp"]),
		Active:         Bool(fields["is_active"]),
	}
	if rec.Owner.Kind == domain.OwnerAddress {
		l.Seller = rec.Owner.Address
	}
	return l, true
}

// Transaction normalizes an EnergyTransaction receipt object.
func Transaction(rec *domain.ObjectRecord) (domain.EnergyTransaction, bool) {
	fields, ok := moveFields(rec)
	if !ok {
		return domain.EnergyTransaction{}, false
	}
	return domain.EnergyTransaction{
		ID:             rec.ObjectID,
		ListingID:      ObjectID(fields["listing_id"]),
		Buyer:          Address(fields["buyer"]),
		Seller:         Address(fields["seller"]),
		EnergyAmountWh: Int64(fields["energy_amount"]),
		TotalPrice:     Int64(fields["total_price"]),
		EnergyType:     domain.EnergyType(Int64(fields["energy_type"])),
		ChainTimestamp: Int64(fields["timestamp"]),
	}, true
}

// Profile normalizes a UserProfile object.
func Profile(rec *domain.ObjectRecord) (domain.UserProfile, bool) {
	fields, ok := moveFields(rec)
	if !ok {
		return domain.UserProfile{}, false
	}
	owner := Address(fields["owner"])
	if owner == "" && rec.Owner.Kind == domain.OwnerAddress {
		owner = rec.Owner.Address
	}
	return domain.UserProfile{
		ID:          rec.ObjectID,
		Owner:       owner,
		TotalSold:   Int64(fields["total_sold"]),
		TotalBought: Int64(fields["total_bought"]),
		TotalEarned: Int64(fields["total_earned"]),
		TotalSpent:  Int64(fields["total_spent"]),
	}, true
}

// Listings normalizes every record that parses and drops the rest.
func Listings(recs []domain.ObjectRecord) []domain.Listing {
	out := make([]domain.Listing, 0, len(recs))
	for i := range recs {
		if l, ok := Listing(&recs[i]); ok {
			out = append(out, l)
		}
	}
	return out
}

// Transactions normalizes every record that parses and drops the rest.
func Transactions(recs []domain.ObjectRecord) []domain.EnergyTransaction {
	out := make([]domain.EnergyTransaction, 0, len(recs))
	for i := range recs {
		if t, ok := Transaction(&recs[i]); ok {
			out = append(out, t)
		}
	}
	return out
}
