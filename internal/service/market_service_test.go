package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/geo"
	"energy-marketplace/internal/core/market"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/internal/core/ports/mocks"
	"energy-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type marketMocks struct {
	ledger     *mocks.MockLedgerClient
	exclusions *mocks.MockExclusionStore
	cache      *mocks.MockSnapshotCache
}

func setupMarketService(t *testing.T, withCache bool) (*MarketService, *marketMocks) {
	ctrl := gomock.NewController(t)
	m := &marketMocks{
		ledger:     mocks.NewMockLedgerClient(ctrl),
		exclusions: mocks.NewMockExclusionStore(ctrl),
		cache:      mocks.NewMockSnapshotCache(ctrl),
	}
	var cache ports.SnapshotCache
	if withCache {
		cache = m.cache
	}
	agg := NewListingAggregator(m.ledger, testMarket, 200, nil, newTestLogger())
	svc := NewMarketService(m.ledger, agg, m.exclusions, cache, testMarket, MarketServiceConfig{
		EventLimit:     200,
		ResponseBudget: 0,
		SnapshotTTL:    15 * time.Second,
	}, newTestLogger())
	return svc, m
}

// expectAggregate makes the type scan the only source with rows.
func expectAggregate(ledger *mocks.MockLedgerClient, account string, typeScan []domain.ObjectRecord, owned []domain.ObjectRecord) {
	ledger.EXPECT().EventsByType(gomock.Any(), testMarket.EventType(domain.EventListingCreated), 200).Return(nil, nil)
	ledger.EXPECT().EventsByModule(gomock.Any(), testPackage, "marketplace", 200).Return(nil, nil)
	ledger.EXPECT().ObjectsByType(gomock.Any(), testMarket.StructType(domain.StructListing)).Return(typeScan, nil)
	if account != "" {
		ledger.EXPECT().OwnedObjects(gomock.Any(), account, testMarket.StructType(domain.StructListing)).Return(owned, nil)
	}
}

func TestMarketService_BrowseHidesPurchasedListings(t *testing.T) {
	svc, m := setupMarketService(t, false)
	sessionID := uuid.New()

	expectAggregate(m.ledger, "", []domain.ObjectRecord{
		listingObj("0x1", 2, true, ""),
		listingObj("0x2", 1, true, ""),
		listingObj("0x3", 3, true, ""),
	}, nil)
	m.exclusions.EXPECT().Members(gomock.Any(), sessionID).Return([]string{"0x2"}, nil)

	res, err := svc.Browse(context.Background(), sessionID, "", market.Query{Sort: market.SortPriceAsc})

	require.NoError(t, err)
	assert.False(t, res.Loading)
	require.Len(t, res.Listings, 2)
	assert.Equal(t, "0x1", res.Listings[0].ID)
	assert.Equal(t, "0x3", res.Listings[1].ID)
}

func TestMarketService_BrowsePriceCeiling(t *testing.T) {
	svc, m := setupMarketService(t, false)
	sessionID := uuid.New()

	rec := listingObj("0xa1", 2, true, "")
	expectAggregate(m.ledger, "", []domain.ObjectRecord{rec}, nil)
	m.exclusions.EXPECT().Members(gomock.Any(), sessionID).Return(nil, nil)

	ceiling := int64(1)
	res, err := svc.Browse(context.Background(), sessionID, "", market.Query{MaxPrice: &ceiling})
	require.NoError(t, err)
	assert.Empty(t, res.Listings)
}

func TestMarketService_BrowseServesCachedSnapshot(t *testing.T) {
	svc, m := setupMarketService(t, true)
	sessionID := uuid.New()

	raw, err := json.Marshal([]domain.Listing{{ID: "0xc1", PricePerKWh: 4, Active: true}})
	require.NoError(t, err)
	m.cache.EXPECT().Get(gomock.Any(), "listings:"+testAccount).Return(raw, nil)
	m.exclusions.EXPECT().Members(gomock.Any(), sessionID).Return(nil, nil)

	res, err := svc.Browse(context.Background(), sessionID, testAccount, market.Query{})

	require.NoError(t, err)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, "0xc1", res.Listings[0].ID)
}

func TestMarketService_BrowseStoresCompleteSnapshot(t *testing.T) {
	svc, m := setupMarketService(t, true)
	sessionID := uuid.New()

	m.cache.EXPECT().Get(gomock.Any(), "listings:"+testAccount).Return(nil, nil)
	expectAggregate(m.ledger, testAccount, []domain.ObjectRecord{listingObj("0x1", 2, true, "")}, nil)
	m.cache.EXPECT().Set(gomock.Any(), "listings:"+testAccount, gomock.Any(), 15*time.Second).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			var got []domain.Listing
			require.NoError(t, json.Unmarshal(value, &got))
			assert.Equal(t, []string{"0x1"}, listingIDs(got))
			return nil
		})
	m.exclusions.EXPECT().Members(gomock.Any(), sessionID).Return(nil, nil)

	_, err := svc.Browse(context.Background(), sessionID, testAccount, market.Query{})
	require.NoError(t, err)
}

func TestMarketService_BrowseLedgerDown(t *testing.T) {
	svc, m := setupMarketService(t, false)
	boom := errors.New("connection refused")

	m.ledger.EXPECT().EventsByType(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
	m.ledger.EXPECT().EventsByModule(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
	m.ledger.EXPECT().ObjectsByType(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := svc.Browse(context.Background(), uuid.New(), "", market.Query{})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LED_001", appErr.Code)
}

func TestMarketService_NearestPinsNewestOwnListing(t *testing.T) {
	svc, m := setupMarketService(t, false)
	sessionID := uuid.New()

	far := listingObj("0xa1", 2, true, "")
	far.Content.Fields["location"] = "Medan 3.59, 98.67"
	mine := listingObj("0xc3", 2, true, testAccount)
	mine.Content.Fields["location"] = "Surabaya -7.25, 112.75"

	m.ledger.EXPECT().EventsByType(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.EventEntry{createdEvent("0xc3", 500)}, nil)
	m.ledger.EXPECT().EventsByModule(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.ledger.EXPECT().MultiGetObjects(gomock.Any(), []string{"0xc3"}).Return(nil, nil)
	m.ledger.EXPECT().ObjectsByType(gomock.Any(), gomock.Any()).
		Return([]domain.ObjectRecord{far, listingObj("0xb2", 2, true, "")}, nil)
	m.ledger.EXPECT().OwnedObjects(gomock.Any(), testAccount, gomock.Any()).Return([]domain.ObjectRecord{mine}, nil)
	m.exclusions.EXPECT().Members(gomock.Any(), sessionID).Return(nil, nil)

	out, err := svc.Nearest(context.Background(), sessionID, testAccount, &geo.Point{Lat: -6.2, Lng: 106.8}, 2)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "0xc3", out[0].ID)
	assert.Equal(t, "0xb2", out[1].ID)
}

func TestMarketService_Listing(t *testing.T) {
	svc, m := setupMarketService(t, false)

	_, err := svc.Listing(context.Background(), "not-an-id")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REQ_001", appErr.Code)

	m.ledger.EXPECT().GetObject(gomock.Any(), "0x404").Return(nil, nil)
	_, err = svc.Listing(context.Background(), "0x404")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REQ_002", appErr.Code)

	rec := listingObj("0x1", 2, false, "0xseller")
	m.ledger.EXPECT().GetObject(gomock.Any(), "0x1").Return(&rec, nil)
	l, err := svc.Listing(context.Background(), `"0x1"`)
	require.NoError(t, err)
	assert.Equal(t, "0xseller", l.Seller)
	assert.False(t, l.Active)
}

func TestMarketService_OwnListingsNewestFirst(t *testing.T) {
	svc, m := setupMarketService(t, false)

	m.ledger.EXPECT().OwnedObjects(gomock.Any(), testAccount, testMarket.StructType(domain.StructListing)).
		Return([]domain.ObjectRecord{
			listingObj("0x1", 2, true, testAccount),
			listingObj("0x2", 2, false, testAccount),
			listingObj("0x3", 2, true, testAccount),
		}, nil)
	m.ledger.EXPECT().EventsByType(gomock.Any(), testMarket.EventType(domain.EventListingCreated), 200).
		Return([]domain.EventEntry{createdEvent("0x2", 300), createdEvent("0x1", 100)}, nil)

	out, err := svc.OwnListings(context.Background(), testAccount)

	require.NoError(t, err)
	assert.Equal(t, []string{"0x2", "0x1", "0x3"}, listingIDs(out))
}

func TestMarketService_OwnListingsWithoutEvents(t *testing.T) {
	svc, m := setupMarketService(t, false)

	m.ledger.EXPECT().OwnedObjects(gomock.Any(), testAccount, gomock.Any()).
		Return([]domain.ObjectRecord{listingObj("0x1", 2, true, testAccount)}, nil)
	m.ledger.EXPECT().EventsByType(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("indexer down"))

	out, err := svc.OwnListings(context.Background(), testAccount)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].CreatedAtMs)

	_, err = svc.OwnListings(context.Background(), "")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WAL_002", appErr.Code)
}

func TestMarketService_TransactionsUsePurchaseTime(t *testing.T) {
	svc, m := setupMarketService(t, false)

	m.ledger.EXPECT().OwnedObjects(gomock.Any(), testAccount, testMarket.StructType(domain.StructTransaction)).
		Return([]domain.ObjectRecord{
			txObj("0xt1", "0xl1", testAccount, "0xs", 1_000),
			txObj("0xt2", "0xl2", testAccount, "0xs", 2_000),
		}, nil)
	m.ledger.EXPECT().EventsByType(gomock.Any(), testMarket.EventType(domain.EventEnergyPurchase), 200).
		Return([]domain.EventEntry{
			purchaseEvent("0xl1", testAccount, "0xs", 5_000_000),
			purchaseEvent("0xl1", testAccount, "0xs", 9_000_000),
		}, nil)

	out, err := svc.Transactions(context.Background(), testAccount)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "0xt1", out[0].ID)
	assert.Equal(t, int64(9_000_000), out[0].DisplayTimeMs)
	assert.Equal(t, int64(2_000_000), out[1].DisplayTimeMs)
}

func TestMarketService_PurchasesFilteredByAccount(t *testing.T) {
	svc, m := setupMarketService(t, false)

	m.ledger.EXPECT().EventsByType(gomock.Any(), testMarket.EventType(domain.EventEnergyPurchase), 200).
		Return([]domain.EventEntry{
			purchaseEvent("0xl1", testAccount, "0xs", 10),
			purchaseEvent("0xl2", "0xother", "0xs", 20),
			purchaseEvent("0xl3", "0xother", testAccount, 30),
		}, nil)

	out, err := svc.Purchases(context.Background(), testAccount)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "0xl1", out[0].ListingID)
	assert.Equal(t, "0xl3", out[1].ListingID)
}

func TestMarketService_Profile(t *testing.T) {
	svc, m := setupMarketService(t, false)
	profileType := testMarket.StructType(domain.StructProfile)

	m.ledger.EXPECT().OwnedObjects(gomock.Any(), testAccount, profileType).Return(nil, nil)
	p, err := svc.Profile(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Nil(t, p)

	m.ledger.EXPECT().OwnedObjects(gomock.Any(), testAccount, profileType).
		Return([]domain.ObjectRecord{profileObj("0xp1", testAccount)}, nil)
	p, err = svc.Profile(context.Background(), testAccount)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "0xp1", p.ID)
	assert.Equal(t, testAccount, p.Owner)
}

func TestMarketService_Invalidate(t *testing.T) {
	svc, m := setupMarketService(t, true)

	m.cache.EXPECT().Delete(gomock.Any(),
		"listings:", "purchases:",
		"listings:"+testAccount, "own-listings:"+testAccount, "transactions:"+testAccount, "purchases:"+testAccount,
	).Return(nil)

	svc.Invalidate(context.Background(), testAccount)
}
