package domain

import "fmt"

// Market identifies the deployed marketplace: the Move package, its module and the
// shared Marketplace object every listing and purchase goes through.
type Market struct {
	PackageID     string
	Module        string
	MarketplaceID string
}

// StructType returns the fully-qualified Move struct type, e.g. <pkg>::marketplace::EnergyListing.
func (m Market) StructType(name string) string {
	return fmt.Sprintf("%s::%s::%s", m.PackageID, m.module(), name)
}

// EventType returns the fully-qualified Move event type.
func (m Market) EventType(name string) string {
	return m.StructType(name)
}

// Target returns the Move call target for an entry function.
func (m Market) Target(function string) string {
	return m.StructType(function)
}

// ModuleName returns the configured module, defaulting to "marketplace".
func (m Market) ModuleName() string {
	return m.module()
}

func (m Market) module() string {
	if m.Module == "" {
		return "marketplace"
	}
	return m.Module
}

// Struct and event names of the marketplace module.
const (
	StructListing     = "EnergyListing"
	StructTransaction = "EnergyTransaction"
	StructProfile     = "UserProfile"

	EventListingCreated = "ListingCreated"
	EventEnergyPurchase = "EnergyPurchased"
)
