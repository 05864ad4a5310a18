package service

import (
	"context"
	"sync"
	"time"

	"energy-marketplace/internal/core/decode"
	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Discovery sources, also used as metric labels.
const (
	SourceEventsByType   = "events_by_type"
	SourceEventsByModule = "events_by_module"
	SourceBulkLookup     = "bulk_lookup"
	SourceTypeScan       = "type_scan"
	SourceOwnerScan      = "owner_scan"
)

// SourceResult is what one discovery source has returned so far.
type SourceResult struct {
	Settled bool
	Objects []domain.ObjectRecord
	Events  []domain.EventEntry
	Err     error
}

// AggregateInput holds the current result of every discovery source.
type AggregateInput struct {
	EventsByType   SourceResult
	EventsByModule SourceResult
	Bulk           SourceResult
	TypeScan       SourceResult
	Owner          SourceResult
}

// AggregateView is the merged active-listing set at one point in time.
type AggregateView struct {
	Listings []domain.Listing
	Loading  bool
	Complete bool // every source has settled
	Err      error
}

// MergeListings merges the sources into one active, deduplicated listing set.
// The bulk lookup is preferred over the type scan when it produced any listing;
// owner-scoped rows are appended after whichever was chosen. The first record
// seen for an id wins, even when it turns out to be inactive. The result depends
// only on the input, not on the order the sources settled in.
func MergeListings(in AggregateInput) AggregateView {
	primary := in.TypeScan.Objects
	if usableListings(in.Bulk.Objects) {
		primary = in.Bulk.Objects
	}
	times := decode.CreationTimes(in.EventsByType.Events, in.EventsByModule.Events)

	seen := mapset.NewThreadUnsafeSet[string]()
	listings := make([]domain.Listing, 0, len(primary)+len(in.Owner.Objects))
	parsed := 0
	for _, batch := range [][]domain.ObjectRecord{primary, in.Owner.Objects} {
		for i := range batch {
			rec := &batch[i]
			if rec.ObjectID != "" && !seen.Add(rec.ObjectID) {
				continue
			}
			l, ok := decode.Listing(rec)
			if !ok {
				continue
			}
			parsed++
			if !l.Active {
				continue
			}
			l.CreatedAtMs = times[l.ID]
			listings = append(listings, l)
		}
	}

	hasPrimary := len(in.Bulk.Objects) > 0 || len(in.TypeScan.Objects) > 0
	view := AggregateView{
		Listings: listings,
		Loading:  (!in.Bulk.Settled && !in.TypeScan.Settled) || (!in.Owner.Settled && !hasPrimary),
		Complete: in.EventsByType.Settled && in.EventsByModule.Settled && in.Bulk.Settled &&
			in.TypeScan.Settled && in.Owner.Settled,
	}
	if parsed == 0 {
		view.Err = firstErr(in.Bulk.Err, in.TypeScan.Err, in.Owner.Err, in.EventsByType.Err, in.EventsByModule.Err)
	}
	return view
}

func usableListings(recs []domain.ObjectRecord) bool {
	for i := range recs {
		if _, ok := decode.Listing(&recs[i]); ok {
			return true
		}
	}
	return false
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ListingAggregator queries the discovery sources concurrently and merges them.
type ListingAggregator struct {
	ledger     ports.LedgerClient
	market     domain.Market
	eventLimit int
	metrics    ports.Metrics
	log        zerolog.Logger
}

// NewListingAggregator creates a new listing aggregator.
func NewListingAggregator(ledger ports.LedgerClient, market domain.Market, eventLimit int, metrics ports.Metrics, log zerolog.Logger) *ListingAggregator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ListingAggregator{
		ledger:     ledger,
		market:     market,
		eventLimit: eventLimit,
		metrics:    metrics,
		log:        log,
	}
}

// sourceCount is the number of views Stream publishes.
const sourceCount = 5

// Stream starts every discovery source and publishes a merged view each time one
// of them settles. The channel is closed once all sources have settled. The bulk
// lookup starts after both event queries settle; with no account the owner scan
// settles empty at once.
func (a *ListingAggregator) Stream(ctx context.Context, account string) <-chan AggregateView {
	updates := make(chan AggregateView, sourceCount)

	var mu sync.Mutex
	var in AggregateInput
	publish := func(apply func(*AggregateInput)) {
		mu.Lock()
		defer mu.Unlock()
		apply(&in)
		updates <- MergeListings(in)
	}

	listingType := a.market.StructType(domain.StructListing)

	go func() {
		defer close(updates)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var events errgroup.Group
			events.Go(func() error {
				r := a.events(gctx, SourceEventsByType, func(ctx context.Context) ([]domain.EventEntry, error) {
					return a.ledger.EventsByType(ctx, a.market.EventType(domain.EventListingCreated), a.eventLimit)
				})
				publish(func(in *AggregateInput) { in.EventsByType = r })
				return nil
			})
			events.Go(func() error {
				r := a.events(gctx, SourceEventsByModule, func(ctx context.Context) ([]domain.EventEntry, error) {
					return a.ledger.EventsByModule(ctx, a.market.PackageID, a.market.ModuleName(), a.eventLimit)
				})
				publish(func(in *AggregateInput) { in.EventsByModule = r })
				return nil
			})
			_ = events.Wait()

			mu.Lock()
			ids := decode.ListingIDs(in.EventsByType.Events, in.EventsByModule.Events)
			mu.Unlock()

			bulk := SourceResult{Settled: true}
			if len(ids) > 0 {
				bulk = a.objects(gctx, SourceBulkLookup, func(ctx context.Context) ([]domain.ObjectRecord, error) {
					return a.ledger.MultiGetObjects(ctx, ids)
				})
			}
			publish(func(in *AggregateInput) { in.Bulk = bulk })
			return nil
		})

		g.Go(func() error {
			r := a.objects(gctx, SourceTypeScan, func(ctx context.Context) ([]domain.ObjectRecord, error) {
				return a.ledger.ObjectsByType(ctx, listingType)
			})
			publish(func(in *AggregateInput) { in.TypeScan = r })
			return nil
		})

		g.Go(func() error {
			r := SourceResult{Settled: true}
			if account != "" {
				r = a.objects(gctx, SourceOwnerScan, func(ctx context.Context) ([]domain.ObjectRecord, error) {
					return a.ledger.OwnedObjects(ctx, account, listingType)
				})
			}
			publish(func(in *AggregateInput) { in.Owner = r })
			return nil
		})

		_ = g.Wait()
	}()

	return updates
}

// Fetch waits for every source and returns the final view.
func (a *ListingAggregator) Fetch(ctx context.Context, account string) AggregateView {
	last := AggregateView{Loading: true}
	for v := range a.Stream(ctx, account) {
		last = v
	}
	a.metrics.SetAggregateSize(len(last.Listings))
	return last
}

// Within returns the latest view available when budget elapses, or the final view
// if every source settles sooner. Sources still running keep going in the background
// until ctx is done.
func (a *ListingAggregator) Within(ctx context.Context, account string, budget time.Duration) AggregateView {
	if budget <= 0 {
		return a.Fetch(ctx, account)
	}
	timer := time.NewTimer(budget)
	defer timer.Stop()

	last := AggregateView{Loading: true}
	updates := a.Stream(ctx, account)
	for {
		select {
		case v, ok := <-updates:
			if !ok {
				a.metrics.SetAggregateSize(len(last.Listings))
				return last
			}
			last = v
		case <-timer.C:
			a.log.Debug().Int("listings", len(last.Listings)).Msg("aggregate: response budget elapsed, returning partial view")
			return last
		}
	}
}

func (a *ListingAggregator) objects(ctx context.Context, source string, fn func(context.Context) ([]domain.ObjectRecord, error)) SourceResult {
	start := time.Now()
	recs, err := fn(ctx)
	a.metrics.ObserveLedgerSource(source, time.Since(start), err)
	if err != nil {
		a.log.Warn().Err(err).Str("source", source).Msg("aggregate: source failed")
	}
	return SourceResult{Settled: true, Objects: recs, Err: err}
}

func (a *ListingAggregator) events(ctx context.Context, source string, fn func(context.Context) ([]domain.EventEntry, error)) SourceResult {
	start := time.Now()
	evs, err := fn(ctx)
	a.metrics.ObserveLedgerSource(source, time.Since(start), err)
	if err != nil {
		a.log.Warn().Err(err).Str("source", source).Msg("aggregate: source failed")
	}
	return SourceResult{Settled: true, Events: evs, Err: err}
}
