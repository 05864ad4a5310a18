package service

import (
	"context"
	"errors"
	"testing"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports/mocks"
	"energy-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type controllerMocks struct {
	wallet     *mocks.MockWalletConnector
	finality   *mocks.MockFinalityWaiter
	exclusions *mocks.MockExclusionStore
}

func setupController(t *testing.T, m domain.Market) (*LifecycleController, *controllerMocks, uuid.UUID) {
	ctrl := gomock.NewController(t)
	cm := &controllerMocks{
		wallet:     mocks.NewMockWalletConnector(ctrl),
		finality:   mocks.NewMockFinalityWaiter(ctrl),
		exclusions: mocks.NewMockExclusionStore(ctrl),
	}
	sessionID := uuid.New()
	c := NewLifecycleController(sessionID, ControllerDeps{
		Wallet:     cm.wallet,
		Finality:   cm.finality,
		Exclusions: cm.exclusions,
		Market:     m,
	}, newTestLogger())
	return c, cm, sessionID
}

func buyAction() domain.Action {
	return domain.Action{Kind: domain.ActionBuyEnergy, ListingID: "0xl1", ProfileID: "0xp1", Payment: 10}
}

func successEffects(digest string, created ...string) *domain.TransactionEffects {
	return &domain.TransactionEffects{Digest: digest, Status: domain.ExecutionStatus{Status: "success"}, CreatedIDs: created}
}

func TestLifecycleController_ConfirmedBuyExcludesListing(t *testing.T) {
	c, m, sessionID := setupController(t, testMarket)

	m.wallet.EXPECT().SignAndExecute(gomock.Any(), BuildMoveCall(testMarket, buyAction())).Return("0xdigest", nil)
	m.finality.EXPECT().WaitForTransaction(gomock.Any(), "0xdigest").Return(successEffects("0xdigest"), nil)
	m.exclusions.EXPECT().Add(gomock.Any(), sessionID, "0xl1").Return(nil)

	st, err := c.Execute(context.Background(), testAccount, buyAction())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseConfirmed, st.Phase)
	assert.Equal(t, domain.MsgConfirmed, st.Message)
	assert.Equal(t, "0xdigest", st.TxDigest)
	assert.Equal(t, "0xl1", st.ListingID)
	assert.Nil(t, st.Error)
	assert.Equal(t, st, c.State())
}

func TestLifecycleController_BuyExcludedBeforeConfirmed(t *testing.T) {
	c, m, sessionID := setupController(t, testMarket)

	entered := make(chan struct{})
	release := make(chan struct{})
	m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("0xdigest", nil)
	m.finality.EXPECT().WaitForTransaction(gomock.Any(), "0xdigest").Return(successEffects("0xdigest"), nil)
	m.exclusions.EXPECT().Add(gomock.Any(), sessionID, "0xl1").
		DoAndReturn(func(context.Context, uuid.UUID, string) error {
			close(entered)
			<-release
			return nil
		})

	_, err := c.Start(context.Background(), testAccount, buyAction())
	require.NoError(t, err)

	<-entered
	assert.Equal(t, domain.PhaseSubmitted, c.State().Phase)

	close(release)
	c.Wait()
	assert.Equal(t, domain.PhaseConfirmed, c.State().Phase)
}

func TestLifecycleController_BuyStaysExcludedWhenStoreFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mocks.NewMockWalletConnector(ctrl)
	finality := mocks.NewMockFinalityWaiter(ctrl)
	backing := mocks.NewMockExclusionStore(ctrl)
	exclusions := NewSessionExclusions(backing, newTestLogger())

	sessionID := uuid.New()
	c := NewLifecycleController(sessionID, ControllerDeps{
		Wallet:     wallet,
		Finality:   finality,
		Exclusions: exclusions,
		Market:     testMarket,
	}, newTestLogger())

	storeDown := errors.New("connection refused")
	wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("0xdigest", nil)
	finality.EXPECT().WaitForTransaction(gomock.Any(), "0xdigest").Return(successEffects("0xdigest"), nil)
	backing.EXPECT().Add(gomock.Any(), sessionID, "0xl1").Return(storeDown)
	backing.EXPECT().Members(gomock.Any(), sessionID).Return(nil, storeDown)

	st, err := c.Execute(context.Background(), testAccount, buyAction())
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseConfirmed, st.Phase)

	ids, err := exclusions.Members(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xl1"}, ids)
}

func TestLifecycleController_WalletErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{
			name:    "move abort inactive listing",
			err:     errors.New(`MoveAbort(MoveLocation { module: ModuleId { name: Identifier("marketplace") }, function: 4 }, 1001) in command 0`),
			code:    "TX_1001",
			message: "This listing is no longer active",
		},
		{
			name:    "bare code in text",
			err:     errors.New("execution failed with abort code 2002"),
			code:    "TX_2002",
			message: "Insufficient payment",
		},
		{
			name:    "user rejected",
			err:     errors.New("User rejected the request"),
			code:    "TX_000",
			message: apperror.GenericTxFailureMessage,
		},
		{
			name:    "wallet unreachable",
			err:     apperror.ErrWalletUnavailable(errors.New("dial tcp: connection refused")),
			code:    "WAL_001",
			message: "Wallet is not reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, m, _ := setupController(t, testMarket)
			m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("", tt.err)

			st, err := c.Execute(context.Background(), testAccount, buyAction())

			require.NoError(t, err, "failures are reported through the state")
			assert.Equal(t, domain.PhaseFailed, st.Phase)
			require.NotNil(t, st.Error)
			assert.Equal(t, tt.code, st.Error.Code)
			assert.Equal(t, tt.message, st.Message)
			assert.Empty(t, st.TxDigest)
		})
	}
}

func TestLifecycleController_FinalityWaitFails(t *testing.T) {
	c, m, _ := setupController(t, testMarket)
	m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("0xdigest", nil)
	m.finality.EXPECT().WaitForTransaction(gomock.Any(), "0xdigest").Return(nil, errors.New("timed out"))

	st, err := c.Execute(context.Background(), testAccount, buyAction())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, st.Phase)
	assert.Equal(t, "FIN_001", st.Error.Code)
	assert.Equal(t, "Transaction failed during confirmation.", st.Message)
	assert.Equal(t, "0xdigest", st.TxDigest, "digest of the submitted transaction is kept")
}

func TestLifecycleController_AbortedOnLedger(t *testing.T) {
	c, m, _ := setupController(t, testMarket)
	m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("0xdigest", nil)
	m.finality.EXPECT().WaitForTransaction(gomock.Any(), "0xdigest").Return(&domain.TransactionEffects{
		Digest: "0xdigest",
		Status: domain.ExecutionStatus{Status: "failure", Error: "MoveAbort(MoveLocation { .. }, 2002) in command 1"},
	}, nil)

	st, err := c.Execute(context.Background(), testAccount, buyAction())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, st.Phase)
	assert.Equal(t, "FIN_001", st.Error.Code)
	assert.Equal(t, "Transaction failed during confirmation. Insufficient payment", st.Message)
}

func TestLifecycleController_SecondActionWhileInFlightIsRejected(t *testing.T) {
	c, m, sessionID := setupController(t, testMarket)
	release := make(chan struct{})

	m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.MoveCall) (string, error) {
			<-release
			return "0xdigest", nil
		}).Times(1)
	m.finality.EXPECT().WaitForTransaction(gomock.Any(), "0xdigest").Return(successEffects("0xdigest"), nil)
	m.exclusions.EXPECT().Add(gomock.Any(), sessionID, "0xl1").Return(nil)

	first, err := c.Start(context.Background(), testAccount, buyAction())
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePending, first.Phase)
	assert.Equal(t, domain.MsgPending, first.Message)

	second, err := c.Start(context.Background(), testAccount, domain.Action{Kind: domain.ActionCancelListing, ListingID: "0xl2"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ACT_001", appErr.Code)
	assert.Equal(t, first, second, "state is unchanged")

	close(release)
	c.Wait()
	assert.Equal(t, domain.PhaseConfirmed, c.State().Phase)
	assert.Equal(t, first.ActionID, c.State().ActionID)
}

func TestLifecycleController_NewActionReplacesState(t *testing.T) {
	c, m, _ := setupController(t, testMarket)
	m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("", errors.New("rejected"))
	failed, err := c.Execute(context.Background(), testAccount, buyAction())
	require.NoError(t, err)

	m.wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("0xd2", nil)
	m.finality.EXPECT().WaitForTransaction(gomock.Any(), "0xd2").Return(successEffects("0xd2"), nil)
	st, err := c.Execute(context.Background(), testAccount, domain.Action{Kind: domain.ActionUpdatePrice, ListingID: "0xl1", NewPrice: 9})

	require.NoError(t, err)
	assert.NotEqual(t, failed.ActionID, st.ActionID)
	assert.Nil(t, st.Error)
	assert.Equal(t, domain.ActionUpdatePrice, st.Action)
}

func TestLifecycleController_MissingMarketplaceFailsWithoutWallet(t *testing.T) {
	tests := []struct {
		name   string
		market domain.Market
		code   string
	}{
		{"no marketplace object", domain.Market{PackageID: testPackage}, "CFG_001"},
		{"no package", domain.Market{MarketplaceID: testMarketplace}, "CFG_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := setupController(t, tt.market)

			st, err := c.Execute(context.Background(), testAccount, domain.Action{Kind: domain.ActionCreateProfile})

			require.NoError(t, err)
			assert.Equal(t, domain.PhaseFailed, st.Phase)
			assert.Equal(t, tt.code, st.Error.Code)
			assert.False(t, c.InFlight())
		})
	}
}

func TestLifecycleController_InvalidActionLeavesStateUntouched(t *testing.T) {
	c, _, _ := setupController(t, testMarket)

	st, err := c.Execute(context.Background(), testAccount, domain.Action{Kind: domain.ActionCreateListing, PricePerKWh: 5, Location: "Jakarta"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REQ_001", appErr.Code)
	assert.Equal(t, domain.PhaseIdle, st.Phase)
}

func TestLifecycleController_JournalAndNotify(t *testing.T) {
	gctrl := gomock.NewController(t)
	wallet := mocks.NewMockWalletConnector(gctrl)
	finality := mocks.NewMockFinalityWaiter(gctrl)
	journal := mocks.NewMockActionJournal(gctrl)
	notifier := mocks.NewMockLifecycleNotifier(gctrl)
	sessionID := uuid.New()

	c := NewLifecycleController(sessionID, ControllerDeps{
		Wallet:   wallet,
		Finality: finality,
		Journal:  journal,
		Notifier: notifier,
		Market:   testMarket,
	}, newTestLogger())

	var phases []domain.Phase
	journal.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.JournalEntry) error {
			assert.Equal(t, sessionID, e.SessionID)
			phases = append(phases, e.Phase)
			return nil
		}).Times(3)
	wallet.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return("0xd", nil)
	finality.EXPECT().WaitForTransaction(gomock.Any(), "0xd").Return(successEffects("0xd", "0xnewlisting"), nil)
	notifier.EXPECT().Notify(gomock.Any(), sessionID, testAccount, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, st domain.LifecycleState) error {
			assert.Equal(t, domain.PhaseConfirmed, st.Phase)
			assert.Equal(t, []string{"0xnewlisting"}, st.CreatedIDs)
			return errors.New("webhook down")
		})

	action := domain.Action{Kind: domain.ActionCreateListing, EnergyAmountWh: 5000, PricePerKWh: 2, EnergyType: domain.EnergySolar, Location: "Jakarta"}
	st, err := c.Execute(context.Background(), testAccount, action)

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseConfirmed, st.Phase, "notification failure does not affect the state")
	assert.Equal(t, []domain.Phase{domain.PhasePending, domain.PhaseSubmitted, domain.PhaseConfirmed}, phases)
}

func TestBuildMoveCall(t *testing.T) {
	create := BuildMoveCall(testMarket, domain.Action{
		Kind: domain.ActionCreateListing, EnergyAmountWh: 5000, PricePerKWh: 2, EnergyType: domain.EnergyHydro, Location: "Bogor",
	})
	assert.Equal(t, "0xpkg::marketplace::create_listing", create.Target)
	assert.Equal(t, []domain.CallArg{
		{Kind: domain.ArgObject, Value: testMarketplace},
		{Kind: domain.ArgU64, Value: "5000"},
		{Kind: domain.ArgU64, Value: "2"},
		{Kind: domain.ArgU8, Value: "2"},
		{Kind: domain.ArgString, Value: "Bogor"},
	}, create.Arguments)

	buy := BuildMoveCall(testMarket, buyAction())
	assert.Equal(t, "0xpkg::marketplace::buy_energy", buy.Target)
	assert.Equal(t, domain.CallArg{Kind: domain.ArgPayment, Amount: 10}, buy.Arguments[3])

	profile := BuildMoveCall(testMarket, domain.Action{Kind: domain.ActionCreateProfile})
	assert.Equal(t, "0xpkg::marketplace::create_profile", profile.Target)
	assert.Empty(t, profile.Arguments)

	price := BuildMoveCall(testMarket, domain.Action{Kind: domain.ActionUpdatePrice, ListingID: "0xl1", NewPrice: 7})
	assert.Equal(t, []domain.CallArg{{Kind: domain.ArgObject, Value: "0xl1"}, {Kind: domain.ArgU64, Value: "7"}}, price.Arguments)
}

func TestAbortCode(t *testing.T) {
	tests := []struct {
		text string
		code int
		ok   bool
	}{
		{"MoveAbort(MoveLocation { function: 3 }, 2001) in command 0", 2001, true},
		{"error 1003: invalid price", 1003, true},
		{"gas budget 10000000 exceeded, code 1002", 1002, true},
		{"MoveAbort(MoveLocation { .. }, 7) in command 0", 0, false},
		{"network error", 0, false},
		{"year 2024 was good", 0, false},
	}
	for _, tt := range tests {
		code, ok := AbortCode(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.code, code, tt.text)
	}
}
