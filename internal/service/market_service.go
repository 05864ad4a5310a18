package service

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"time"

	"energy-marketplace/internal/core/decode"
	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/geo"
	"energy-marketplace/internal/core/market"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Snapshot cache key prefixes, one per cached view.
const (
	snapshotListings     = "listings:"
	snapshotOwnListings  = "own-listings:"
	snapshotTransactions = "transactions:"
	snapshotPurchases    = "purchases:"
)

// MarketService serves the read views of the marketplace. Views that are fully
// settled are kept in the snapshot cache until their TTL expires or Invalidate is called.
type MarketService struct {
	ledger     ports.LedgerClient
	aggregator *ListingAggregator
	exclusions ports.ExclusionStore
	cache      ports.SnapshotCache // nil disables caching
	cacheTTL   time.Duration
	market     domain.Market
	eventLimit int
	budget     time.Duration
	log        zerolog.Logger
}

// MarketServiceConfig holds the tunables of MarketService.
type MarketServiceConfig struct {
	EventLimit     int
	ResponseBudget time.Duration // how long Browse waits for slow discovery sources
	SnapshotTTL    time.Duration
}

// NewMarketService creates a new market service.
func NewMarketService(
	ledger ports.LedgerClient,
	aggregator *ListingAggregator,
	exclusions ports.ExclusionStore,
	cache ports.SnapshotCache,
	m domain.Market,
	cfg MarketServiceConfig,
	log zerolog.Logger,
) *MarketService {
	return &MarketService{
		ledger:     ledger,
		aggregator: aggregator,
		exclusions: exclusions,
		cache:      cache,
		cacheTTL:   cfg.SnapshotTTL,
		market:     m,
		eventLimit: cfg.EventLimit,
		budget:     cfg.ResponseBudget,
		log:        log,
	}
}

// Browse returns the active listings matching q, minus everything the session has bought.
func (s *MarketService) Browse(ctx context.Context, sessionID uuid.UUID, account string, q market.Query) (*ports.BrowseResult, error) {
	view, err := s.activeView(ctx, account, s.budget)
	if err != nil {
		return nil, err
	}
	exclude, err := s.excluded(ctx, sessionID, q.Exclude)
	if err != nil {
		return nil, err
	}
	q.Exclude = exclude

	return &ports.BrowseResult{
		Listings: market.Apply(view.Listings, q),
		Loading:  view.Loading,
	}, nil
}

// Nearest returns the listings closest to origin. The account's newest listing is
// pinned to the front when it is still active.
func (s *MarketService) Nearest(ctx context.Context, sessionID uuid.UUID, account string, origin *geo.Point, limit int) ([]market.Ranked, error) {
	view, err := s.activeView(ctx, account, s.budget)
	if err != nil {
		return nil, err
	}
	exclude, err := s.excluded(ctx, sessionID, nil)
	if err != nil {
		return nil, err
	}

	var pinID string
	if account != "" {
		own := slices.DeleteFunc(slices.Clone(view.Listings), func(l domain.Listing) bool { return l.Seller != account })
		pinID = market.NewestID(own)
	}
	return market.NearestPeers(view.Listings, origin, exclude, pinID, limit), nil
}

// ActiveListings runs a full aggregation, bypassing the snapshot cache.
func (s *MarketService) ActiveListings(ctx context.Context, account string) ([]domain.Listing, error) {
	view := s.aggregator.Fetch(ctx, account)
	if view.Err != nil && len(view.Listings) == 0 {
		return nil, apperror.ErrLedgerUnavailable(view.Err)
	}
	if view.Complete && view.Err == nil {
		s.store(ctx, snapshotListings+account, view.Listings)
	}
	return view.Listings, nil
}

// Listing returns a single listing by id, active or not.
func (s *MarketService) Listing(ctx context.Context, id string) (*domain.Listing, error) {
	lookup, ok := decode.LookupID(id)
	if !ok {
		return nil, apperror.Validation("listing id must be a 0x-prefixed hex object id")
	}
	rec, err := s.ledger.GetObject(ctx, lookup)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("Listing")
	}
	l, ok := decode.Listing(rec)
	if !ok {
		return nil, apperror.ErrNotFound("Listing")
	}
	return &l, nil
}

// OwnListings returns every listing owned by account, inactive ones included,
// newest first.
func (s *MarketService) OwnListings(ctx context.Context, account string) ([]domain.Listing, error) {
	if account == "" {
		return nil, apperror.ErrNoConnectedAccount()
	}
	key := snapshotOwnListings + account
	var cached []domain.Listing
	if s.load(ctx, key, &cached) {
		return cached, nil
	}

	recs, err := s.ledger.OwnedObjects(ctx, account, s.market.StructType(domain.StructListing))
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	events, err := s.ledger.EventsByType(ctx, s.market.EventType(domain.EventListingCreated), s.eventLimit)
	if err != nil {
		s.log.Warn().Err(err).Msg("own listings: creation events unavailable, timestamps left unknown")
	}
	times := decode.CreationTimes(events)

	listings := decode.Listings(recs)
	for i := range listings {
		listings[i].CreatedAtMs = times[listings[i].ID]
	}
	slices.SortStableFunc(listings, func(a, b domain.Listing) int {
		return cmp.Compare(b.CreatedAtMs, a.CreatedAtMs)
	})

	s.store(ctx, key, listings)
	return listings, nil
}

// Transactions returns the receipts held by account, most recent first.
func (s *MarketService) Transactions(ctx context.Context, account string) ([]ports.TransactionView, error) {
	if account == "" {
		return nil, apperror.ErrNoConnectedAccount()
	}
	key := snapshotTransactions + account
	var cached []ports.TransactionView
	if s.load(ctx, key, &cached) {
		return cached, nil
	}

	recs, err := s.ledger.OwnedObjects(ctx, account, s.market.StructType(domain.StructTransaction))
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	var purchaseTimes map[string]int64
	if purchases, err := s.purchases(ctx, ""); err != nil {
		s.log.Warn().Err(err).Msg("transactions: purchase events unavailable, using on-chain timestamps")
	} else {
		purchaseTimes = domain.LatestPurchaseTimes(purchases)
	}

	txs := decode.Transactions(recs)
	views := make([]ports.TransactionView, len(txs))
	for i := range txs {
		views[i] = ports.TransactionView{EnergyTransaction: txs[i], DisplayTimeMs: txs[i].DisplayTimeMs(purchaseTimes)}
	}
	slices.SortStableFunc(views, func(a, b ports.TransactionView) int {
		return cmp.Compare(b.DisplayTimeMs, a.DisplayTimeMs)
	})

	s.store(ctx, key, views)
	return views, nil
}

// Purchases returns the purchase events account took part in, newest first.
// With no account every purchase is returned.
func (s *MarketService) Purchases(ctx context.Context, account string) ([]domain.PurchaseEvent, error) {
	key := snapshotPurchases + account
	var cached []domain.PurchaseEvent
	if s.load(ctx, key, &cached) {
		return cached, nil
	}
	out, err := s.purchases(ctx, account)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	s.store(ctx, key, out)
	return out, nil
}

// Profile returns the account's profile, or nil when it has none.
func (s *MarketService) Profile(ctx context.Context, account string) (*domain.UserProfile, error) {
	if account == "" {
		return nil, apperror.ErrNoConnectedAccount()
	}
	recs, err := s.ledger.OwnedObjects(ctx, account, s.market.StructType(domain.StructProfile))
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	for i := range recs {
		if p, ok := decode.Profile(&recs[i]); ok {
			return &p, nil
		}
	}
	return nil, nil
}

// Invalidate drops every cached view of account and the account-less listing view.
func (s *MarketService) Invalidate(ctx context.Context, account string) {
	if s.cache == nil {
		return
	}
	keys := []string{snapshotListings, snapshotPurchases}
	if account != "" {
		keys = append(keys,
			snapshotListings+account,
			snapshotOwnListings+account,
			snapshotTransactions+account,
			snapshotPurchases+account,
		)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Str("account", account).Msg("snapshot: invalidate failed")
	}
}

func (s *MarketService) purchases(ctx context.Context, account string) ([]domain.PurchaseEvent, error) {
	events, err := s.ledger.EventsByType(ctx, s.market.EventType(domain.EventEnergyPurchase), s.eventLimit)
	if err != nil {
		return nil, err
	}
	return decode.Purchases(events, account), nil
}

// activeView returns the cached aggregate or waits up to budget for a fresh one.
func (s *MarketService) activeView(ctx context.Context, account string, budget time.Duration) (AggregateView, error) {
	key := snapshotListings + account
	var cached []domain.Listing
	if s.load(ctx, key, &cached) {
		return AggregateView{Listings: cached, Complete: true}, nil
	}

	view := s.aggregator.Within(ctx, account, budget)
	if view.Err != nil && len(view.Listings) == 0 {
		return view, apperror.ErrLedgerUnavailable(view.Err)
	}
	if view.Complete && view.Err == nil {
		s.store(ctx, key, view.Listings)
	}
	return view, nil
}

func (s *MarketService) excluded(ctx context.Context, sessionID uuid.UUID, extra mapset.Set[string]) (mapset.Set[string], error) {
	ids, err := s.exclusions.Members(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	set := mapset.NewThreadUnsafeSet(ids...)
	if extra != nil {
		extra.Each(func(id string) bool {
			set.Add(id)
			return false
		})
	}
	return set, nil
}

func (s *MarketService) load(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot: read failed")
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot: corrupt entry ignored")
		return false
	}
	return true
}

func (s *MarketService) store(ctx context.Context, key string, v any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot: marshal failed")
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot: write failed")
	}
}
