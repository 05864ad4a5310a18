package decode

import (
	"regexp"
	"strings"

	"energy-marketplace/internal/core/domain"
)

var hexIDRe = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)

// listingIDKeys are tried in order; the first non-empty id wins.
var listingIDKeys = []string{"listing_id", "listingId", "id"}

// EventListingID extracts the listing id an event refers to, or "".
func EventListingID(e *domain.EventEntry) string {
	if e == nil || e.ParsedJSON == nil {
		return ""
	}
	for _, key := range listingIDKeys {
		v, ok := e.ParsedJSON[key]
		if !ok || v == nil {
			continue
		}
		if id := ObjectID(v); id != "" {
			return id
		}
	}
	return ""
}

// LookupID cleans an extracted id for use in an object lookup: quotes and
// surrounding space are stripped and the result must be 0x-prefixed hex.
func LookupID(raw string) (string, bool) {
	id := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if !hexIDRe.MatchString(id) {
		return "", false
	}
	return id, true
}

// ListingIDs returns the distinct lookup-ready listing ids across event batches,
// in first-seen order.
func ListingIDs(batches ...[]domain.EventEntry) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, batch := range batches {
		for i := range batch {
			id, ok := LookupID(EventListingID(&batch[i]))
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// CreationTimes maps listing id to the latest positive event timestamp across the
// batches. The result does not depend on entry order.
func CreationTimes(batches ...[]domain.EventEntry) map[string]int64 {
	out := make(map[string]int64)
	for _, batch := range batches {
		for i := range batch {
			id := strings.TrimSpace(strings.ReplaceAll(EventListingID(&batch[i]), `"`, ""))
			ts := batch[i].TimestampMs
			if id == "" || ts <= 0 {
				continue
			}
			if ts > out[id] {
				out[id] = ts
			}
		}
	}
	return out
}

// Purchase parses an EnergyPurchased event.
func Purchase(e *domain.EventEntry) (domain.PurchaseEvent, bool) {
	id := EventListingID(e)
	if id == "" {
		return domain.PurchaseEvent{}, false
	}
	return domain.PurchaseEvent{
		ListingID:      id,
		Buyer:          Address(e.ParsedJSON["buyer"]),
		Seller:         Address(e.ParsedJSON["seller"]),
		EnergyAmountWh: Int64(e.ParsedJSON["energy_amount"]),
		TotalPrice:     Int64(e.ParsedJSON["total_price"]),
		TimestampMs:    e.TimestampMs,
	}, true
}

// Purchases parses every EnergyPurchased event, keeping those involving account
// (all of them when account is empty).
func Purchases(events []domain.EventEntry, account string) []domain.PurchaseEvent {
	out := make([]domain.PurchaseEvent, 0, len(events))
	for i := range events {
		p, ok := Purchase(&events[i])
		if !ok {
			continue
		}
		if account != "" && !p.Involves(account) {
			continue
		}
		out = append(out, p)
	}
	return out
}
