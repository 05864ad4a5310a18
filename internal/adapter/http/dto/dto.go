package dto

import (
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/geo"
	"energy-marketplace/internal/core/market"
	"energy-marketplace/internal/core/ports"
)

// SessionResponse is the response body for a newly opened session.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// NewSessionResponse converts an issued session token.
func NewSessionResponse(t *ports.SessionToken) SessionResponse {
	return SessionResponse{
		SessionID: t.SessionID.String(),
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt.Unix(),
	}
}

// BrowseQuery holds the query parameters of the listing browser.
type BrowseQuery struct {
	EnergyType string `form:"energy_type" binding:"omitempty,energy_type"`
	MaxPrice   *int64 `form:"max_price" binding:"omitempty,gte=0"`
	Location   string `form:"location" binding:"max=200"`
	Origin     string `form:"origin" binding:"max=200"` // the user's own location text
	Sort       string `form:"sort" binding:"omitempty,oneof=newest price_asc distance"`
	Pin        string `form:"pin" binding:"omitempty,object_id"`
}

// Query converts the parameters into a pipeline query.
func (q BrowseQuery) Query() market.Query {
	out := market.Query{
		MaxPrice: q.MaxPrice,
		Location: q.Location,
		Origin:   ParseOrigin(q.Origin),
		PinID:    q.Pin,
	}
	if t, ok := domain.ParseEnergyType(q.EnergyType); ok {
		out.EnergyType = &t
	}
	out.Sort, _ = market.ParseSortKey(q.Sort)
	return out
}

// NearestQuery holds the query parameters of the nearest-peers panel.
type NearestQuery struct {
	Origin string `form:"origin" binding:"required,max=200"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// HistoryQuery bounds the action history page.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// ParseOrigin returns nil when text carries no coordinates.
func ParseOrigin(text string) *geo.Point {
	if p, ok := geo.ParseCoordinates(text); ok {
		return &p
	}
	return nil
}

// CreateListingRequest is the request body for listing energy.
type CreateListingRequest struct {
	EnergyAmountWh int64  `json:"energy_amount_wh" binding:"required,gt=0"`
	PricePerKWh    int64  `json:"price_per_kwh" binding:"required,gt=0"`
	EnergyType     string `json:"energy_type" binding:"required,energy_type"`
	Location       string `json:"location" binding:"required,min=1,max=200"`
}

// Action converts the request into a create_listing action.
func (r CreateListingRequest) Action() domain.Action {
	t, _ := domain.ParseEnergyType(r.EnergyType)
	return domain.Action{
		Kind:           domain.ActionCreateListing,
		EnergyAmountWh: r.EnergyAmountWh,
		PricePerKWh:    r.PricePerKWh,
		EnergyType:     t,
		Location:       r.Location,
	}
}

// BuyRequest is the request body for buying a listing. Payment and ProfileID are
// resolved from the ledger when omitted.
type BuyRequest struct {
	ListingID string `json:"listing_id" binding:"required,object_id"`
	ProfileID string `json:"profile_id" binding:"omitempty,object_id"`
	Payment   int64  `json:"payment" binding:"omitempty,gt=0"`
}

// Action converts the request into a buy_energy action.
func (r BuyRequest) Action() domain.Action {
	return domain.Action{
		Kind:      domain.ActionBuyEnergy,
		ListingID: r.ListingID,
		ProfileID: r.ProfileID,
		Payment:   r.Payment,
	}
}

// CancelRequest is the request body for cancelling an own listing.
type CancelRequest struct {
	ListingID string `json:"listing_id" binding:"required,object_id"`
}

// Action converts the request into a cancel_listing action.
func (r CancelRequest) Action() domain.Action {
	return domain.Action{Kind: domain.ActionCancelListing, ListingID: r.ListingID}
}

// UpdatePriceRequest is the request body for repricing an own listing.
type UpdatePriceRequest struct {
	ListingID string `json:"listing_id" binding:"required,object_id"`
	NewPrice  int64  `json:"new_price" binding:"required,gt=0"`
}

// Action converts the request into an update_price action.
func (r UpdatePriceRequest) Action() domain.Action {
	return domain.Action{Kind: domain.ActionUpdatePrice, ListingID: r.ListingID, NewPrice: r.NewPrice}
}

// ListingResponse is the display form of a listing.
type ListingResponse struct {
	ID             string   `json:"id"`
	Seller         string   `json:"seller"`
	EnergyAmountWh int64    `json:"energy_amount_wh"`
	EnergyKWh      string   `json:"energy_kwh"`
	PricePerKWh    int64    `json:"price_per_kwh"`
	TotalPrice     int64    `json:"total_price"`
	EnergyType     string   `json:"energy_type"`
	Location       string   `json:"location"`
	Active         bool     `json:"is_active"`
	CreatedAtMs    int64    `json:"created_at_ms,omitempty"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
	Distance       string   `json:"distance,omitempty"`
}

// NewListingResponse converts a listing without distance information.
func NewListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:             l.ID,
		Seller:         l.Seller,
		EnergyAmountWh: l.EnergyAmountWh,
		EnergyKWh:      l.EnergyKWh().StringFixed(2),
		PricePerKWh:    l.PricePerKWh,
		TotalPrice:     l.TotalPrice(),
		EnergyType:     l.EnergyType.String(),
		Location:       l.Location,
		Active:         l.Active,
		CreatedAtMs:    l.CreatedAtMs,
	}
}

// NewRankedResponses converts pipeline output, keeping its order.
func NewRankedResponses(ranked []market.Ranked) []ListingResponse {
	out := make([]ListingResponse, 0, len(ranked))
	for _, r := range ranked {
		resp := NewListingResponse(r.Listing)
		if r.HasDistance() {
			km := r.DistanceKm
			resp.DistanceKm = &km
			resp.Distance = geo.FormatDistance(km)
		}
		out = append(out, resp)
	}
	return out
}

// NewListingResponses converts listings, keeping their order.
func NewListingResponses(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, NewListingResponse(l))
	}
	return out
}

// TransactionResponse is the display form of a trade receipt.
type TransactionResponse struct {
	ID             string `json:"id"`
	ListingID      string `json:"listing_id"`
	Buyer          string `json:"buyer"`
	Seller         string `json:"seller"`
	EnergyAmountWh int64  `json:"energy_amount_wh"`
	TotalPrice     int64  `json:"total_price"`
	EnergyType     string `json:"energy_type"`
	Time           string `json:"time"`
	TimeMs         int64  `json:"time_ms"`
}

// NewTransactionResponses converts receipts, keeping their order.
func NewTransactionResponses(views []ports.TransactionView) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, TransactionResponse{
			ID:             v.ID,
			ListingID:      v.ListingID,
			Buyer:          v.Buyer,
			Seller:         v.Seller,
			EnergyAmountWh: v.EnergyAmountWh,
			TotalPrice:     v.TotalPrice,
			EnergyType:     v.EnergyType.String(),
			Time:           time.UnixMilli(v.DisplayTimeMs).UTC().Format(time.RFC3339),
			TimeMs:         v.DisplayTimeMs,
		})
	}
	return out
}

// ProfileResponse reports the account's profile, or whether one is being created.
type ProfileResponse struct {
	Account   string                 `json:"account,omitempty"`
	Profile   *domain.UserProfile    `json:"profile"`
	Attempted bool                   `json:"attempted"`
	State     *domain.LifecycleState `json:"state,omitempty"`
}
