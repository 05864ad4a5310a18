// Package market filters, ranks and orders aggregated listings for display.
package market

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/geo"

	mapset "github.com/deckarep/golang-set/v2"
)

// SortKey selects the ordering of Apply's output.
type SortKey string

const (
	SortPriceAsc SortKey = "price_asc"
	SortDistance SortKey = "distance"
	SortNewest   SortKey = "newest"
)

// ParseSortKey accepts the three orderings; an empty string means cheapest first.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortPriceAsc:
		return SortPriceAsc, true
	case SortNewest:
		return SortNewest, true
	case SortDistance:
		return SortDistance, true
	}
	return "", false
}

// DefaultPeerLimit is the size of the nearest-peers panel.
const DefaultPeerLimit = 6

// Query holds the user's filter, sort and pin choices. Nil or empty filter fields
// disable their stage; an empty Sort orders by price.
type Query struct {
	Exclude    mapset.Set[string]
	EnergyType *domain.EnergyType
	MaxPrice   *int64
	Location   string
	Origin     *geo.Point
	Sort       SortKey
	PinID      string
}

// Ranked is a listing annotated with its distance from the query origin.
// DistanceKm is +Inf when either side has no coordinates.
type Ranked struct {
	domain.Listing
	DistanceKm float64
}

// HasDistance reports whether the distance is bounded.
func (r Ranked) HasDistance() bool {
	return !math.IsInf(r.DistanceKm, 0)
}

// Apply runs the pipeline: exclusion, category, price ceiling, location substring,
// distance annotation, stable sort, then moving the pinned listing to the front.
// The output is always a subset of the input.
func Apply(listings []domain.Listing, q Query) []Ranked {
	needle := strings.ToLower(strings.TrimSpace(q.Location))

	out := make([]Ranked, 0, len(listings))
	for _, l := range listings {
		if q.Exclude != nil && q.Exclude.Contains(l.ID) {
			continue
		}
		if q.EnergyType != nil && l.EnergyType != *q.EnergyType {
			continue
		}
		if l.PricePerKWh < 0 || (q.MaxPrice != nil && l.PricePerKWh > *q.MaxPrice) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.Location), needle) {
			continue
		}
		out = append(out, Ranked{Listing: l, DistanceKm: geo.Between(q.Origin, l.Location)})
	}

	switch q.Sort {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Ranked) int {
			return cmp.Compare(b.CreatedAtMs, a.CreatedAtMs)
		})
	case SortDistance:
		slices.SortStableFunc(out, byDistance)
	default:
		slices.SortStableFunc(out, func(a, b Ranked) int {
			return cmp.Compare(a.PricePerKWh, b.PricePerKWh)
		})
	}

	return pin(out, q.PinID)
}

// NearestPeers returns up to limit listings ordered by distance, with pinID (when
// present) moved to the front before truncation.
func NearestPeers(listings []domain.Listing, origin *geo.Point, exclude mapset.Set[string], pinID string, limit int) []Ranked {
	if limit <= 0 {
		limit = DefaultPeerLimit
	}
	ranked := Apply(listings, Query{Exclude: exclude, Origin: origin, Sort: SortDistance, PinID: pinID})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// NewestID returns the id of the most recently created listing, or "".
func NewestID(listings []domain.Listing) string {
	var id string
	var best int64 = -1
	for _, l := range listings {
		if l.CreatedAtMs > best {
			best = l.CreatedAtMs
			id = l.ID
		}
	}
	return id
}

func pin(out []Ranked, id string) []Ranked {
	if id == "" {
		return out
	}
	idx := slices.IndexFunc(out, func(r Ranked) bool { return r.ID == id })
	if idx <= 0 {
		return out
	}
	pinned := out[idx]
	copy(out[1:idx+1], out[:idx])
	out[0] = pinned
	return out
}

func byDistance(a, b Ranked) int {
	aInf, bInf := !a.HasDistance(), !b.HasDistance()
	switch {
	case aInf && bInf:
		return 0
	case aInf:
		return 1
	case bInf:
		return -1
	case a.DistanceKm < b.DistanceKm:
		return -1
	case a.DistanceKm > b.DistanceKm:
		return 1
	}
	return 0
}
