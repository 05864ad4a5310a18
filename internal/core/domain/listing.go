package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EnergyType is the on-chain energy category (u8 in the marketplace module).
type EnergyType uint8

const (
	EnergySolar EnergyType = iota
	EnergyWind
	EnergyHydro
	EnergyGrid
)

var energyTypeNames = [...]string{"solar", "wind", "hydro", "grid"}

func (t EnergyType) String() string {
	if int(t) < len(energyTypeNames) {
		return energyTypeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is one of the four categories the contract accepts.
func (t EnergyType) Valid() bool {
	return int(t) < len(energyTypeNames)
}

// ParseEnergyType accepts a category name (case-insensitive) or its numeric code.
func ParseEnergyType(s string) (EnergyType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range energyTypeNames {
		if s == name || (len(s) == 1 && s[0] == byte('0'+i)) {
			return EnergyType(i), true
		}
	}
	return 0, false
}

// WhPerKWh converts the on-chain Wh amounts into the kWh unit prices are quoted in.
const WhPerKWh = 1000

// Listing is a read-only projection of an EnergyListing ledger object.
type Listing struct {
	ID             string     `json:"id"`
	Seller         string     `json:"seller"`
	EnergyAmountWh int64      `json:"energy_amount_wh"`
	PricePerKWh    int64      `json:"price_per_kwh"`
	EnergyType     EnergyType `json:"energy_type"`
	Location       string     `json:"location"`
	ChainTimestamp int64      `json:"chain_timestamp"` // seconds, as stored by the contract
	Active         bool       `json:"is_active"`
	CreatedAtMs    int64      `json:"created_at_ms"` // from the ListingCreated event, 0 when unknown
}

// PurchasableKWh is the whole-kWh quantity a buyer pays for.
func (l *Listing) PurchasableKWh() int64 {
	return l.EnergyAmountWh / WhPerKWh
}

// TotalPrice is the payment a buy_energy call must carry.
func (l *Listing) TotalPrice() int64 {
	return l.PurchasableKWh() * l.PricePerKWh
}

// EnergyKWh is the display amount, rounded to two places.
func (l *Listing) EnergyKWh() decimal.Decimal {
	return decimal.NewFromInt(l.EnergyAmountWh).Div(decimal.NewFromInt(WhPerKWh)).Round(2)
}
