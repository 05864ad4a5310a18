package domain

// EnergyTransaction is the receipt object the marketplace transfers to the buyer after a purchase.
type EnergyTransaction struct {
	ID             string     `json:"id"`
	ListingID      string     `json:"listing_id"`
	Buyer          string     `json:"buyer"`
	Seller         string     `json:"seller"`
	EnergyAmountWh int64      `json:"energy_amount_wh"`
	TotalPrice     int64      `json:"total_price"`
	EnergyType     EnergyType `json:"energy_type"`
	ChainTimestamp int64      `json:"chain_timestamp"` // seconds
}

// DisplayTimeMs picks the latest purchase event time for the listing, falling back to
// the on-chain timestamp.
func (t *EnergyTransaction) DisplayTimeMs(purchaseTimes map[string]int64) int64 {
	if ts, ok := purchaseTimes[t.ListingID]; ok && ts > 0 {
		return ts
	}
	return t.ChainTimestamp * 1000
}

// Involves reports whether addr took part in the trade.
func (t *EnergyTransaction) Involves(addr string) bool {
	return addr != "" && (t.Buyer == addr || t.Seller == addr)
}

// PurchaseEvent is a parsed EnergyPurchased event.
type PurchaseEvent struct {
	ListingID      string `json:"listing_id"`
	Buyer          string `json:"buyer"`
	Seller         string `json:"seller"`
	EnergyAmountWh int64  `json:"energy_amount_wh"`
	TotalPrice     int64  `json:"total_price"`
	TimestampMs    int64  `json:"timestamp_ms"`
}

// Involves reports whether addr is the buyer or seller of the purchase.
func (e *PurchaseEvent) Involves(addr string) bool {
	return addr != "" && (e.Buyer == addr || e.Seller == addr)
}

// LatestPurchaseTimes maps listing id to its most recent purchase time.
func LatestPurchaseTimes(events []PurchaseEvent) map[string]int64 {
	out := make(map[string]int64, len(events))
	for _, e := range events {
		if e.ListingID == "" || e.TimestampMs <= 0 {
			continue
		}
		if e.TimestampMs > out[e.ListingID] {
			out[e.ListingID] = e.TimestampMs
		}
	}
	return out
}
