package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"

	"github.com/rs/zerolog"
)

// DefaultCascadeIntervals is the wait before each refetch attempt.
var DefaultCascadeIntervals = []time.Duration{
	500 * time.Millisecond,
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
}

// cascadeAttemptTimeout bounds the ledger queries of one refetch attempt.
const cascadeAttemptTimeout = 15 * time.Second

// CascadeProbe re-reads the views a confirmed action affects.
type CascadeProbe interface {
	Invalidate(ctx context.Context, account string)
	ActiveListings(ctx context.Context, account string) ([]domain.Listing, error)
	OwnListings(ctx context.Context, account string) ([]domain.Listing, error)
	Transactions(ctx context.Context, account string) ([]ports.TransactionView, error)
	Purchases(ctx context.Context, account string) ([]domain.PurchaseEvent, error)
	Listing(ctx context.Context, id string) (*domain.Listing, error)
	Profile(ctx context.Context, account string) (*domain.UserProfile, error)
}

// RefetchCascade re-reads the marketplace after a confirmed action until the
// action's effect is visible or the attempts run out. Failures are logged and
// never affect the confirmed state.
type RefetchCascade struct {
	probe     CascadeProbe
	intervals []time.Duration
	metrics   ports.Metrics
	log       zerolog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRefetchCascade creates a cascade. Empty intervals fall back to DefaultCascadeIntervals.
func NewRefetchCascade(probe CascadeProbe, intervals []time.Duration, metrics ports.Metrics, log zerolog.Logger) *RefetchCascade {
	if len(intervals) == 0 {
		intervals = DefaultCascadeIntervals
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RefetchCascade{
		probe:     probe,
		intervals: slices.Clone(intervals),
		metrics:   metrics,
		log:       log,
		stop:      make(chan struct{}),
	}
}

// Trigger starts polling for the effect of a confirmed action in the background.
func (r *RefetchCascade) Trigger(account string, action domain.Action, st domain.LifecycleState) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(account, action, st)
	}()
}

// Wait blocks until every triggered cascade has finished.
func (r *RefetchCascade) Wait() {
	r.wg.Wait()
}

// Close abandons pending waits and blocks until running attempts return.
func (r *RefetchCascade) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.wg.Wait()
}

func (r *RefetchCascade) run(account string, action domain.Action, st domain.LifecycleState) {
	log := r.log.With().Str("action", string(action.Kind)).Str("action_id", st.ActionID.String()).Logger()

	for attempt, wait := range r.intervals {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-r.stop:
			timer.Stop()
			log.Debug().Int("attempt", attempt+1).Msg("cascade: stopped")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), cascadeAttemptTimeout)
		observed, err := r.attempt(ctx, account, action, st)
		cancel()

		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("cascade: refetch failed")
			continue
		}
		if observed {
			r.metrics.ObserveCascade(action.Kind, attempt+1, true)
			log.Debug().Int("attempt", attempt+1).Msg("cascade: change observed")
			return
		}
	}

	r.metrics.ObserveCascade(action.Kind, len(r.intervals), false)
	log.Warn().Int("attempts", len(r.intervals)).Msg("cascade: change not observed, giving up")
}

// attempt refreshes every affected view and reports whether the action's effect is visible.
func (r *RefetchCascade) attempt(ctx context.Context, account string, action domain.Action, st domain.LifecycleState) (bool, error) {
	r.probe.Invalidate(ctx, account)

	active, err := r.probe.ActiveListings(ctx, account)
	if err != nil {
		return false, err
	}

	var own []domain.Listing
	if account != "" {
		if own, err = r.probe.OwnListings(ctx, account); err != nil {
			r.log.Debug().Err(err).Msg("cascade: own listings refresh failed")
		}
		if _, err := r.probe.Transactions(ctx, account); err != nil {
			r.log.Debug().Err(err).Msg("cascade: transactions refresh failed")
		}
	}
	if _, err := r.probe.Purchases(ctx, account); err != nil {
		r.log.Debug().Err(err).Msg("cascade: purchases refresh failed")
	}

	switch action.Kind {
	case domain.ActionBuyEnergy, domain.ActionCancelListing:
		return !slices.ContainsFunc(active, func(l domain.Listing) bool { return l.ID == action.ListingID }), nil
	case domain.ActionCreateListing:
		if len(st.CreatedIDs) == 0 {
			return true, nil
		}
		seen := func(l domain.Listing) bool { return slices.Contains(st.CreatedIDs, l.ID) }
		return slices.ContainsFunc(own, seen) || slices.ContainsFunc(active, seen), nil
	case domain.ActionUpdatePrice:
		l, err := r.probe.Listing(ctx, action.ListingID)
		if err != nil {
			return false, err
		}
		return l.PricePerKWh == action.NewPrice, nil
	case domain.ActionCreateProfile:
		if account == "" {
			return true, nil
		}
		p, err := r.probe.Profile(ctx, account)
		if err != nil {
			return false, err
		}
		return p != nil, nil
	}
	return true, nil
}
