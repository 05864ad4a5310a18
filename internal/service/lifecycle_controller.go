package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ControllerDeps are the collaborators shared by every session's controller.
// Notifier, Journal and Cascade may be nil.
type ControllerDeps struct {
	Wallet     ports.WalletConnector
	Finality   ports.FinalityWaiter
	Exclusions ports.ExclusionStore
	Cascade    *RefetchCascade
	Notifier   ports.LifecycleNotifier
	Journal    ports.ActionJournal
	Metrics    ports.Metrics
	Market     domain.Market
}

// LifecycleController drives one session's ledger-mutating actions through
// idle, pending, submitted and then confirmed or failed. At most one action is
// in flight; a new action replaces the previous state.
type LifecycleController struct {
	sessionID uuid.UUID
	deps      ControllerDeps
	log       zerolog.Logger

	mu    sync.Mutex
	state domain.LifecycleState
	wg    sync.WaitGroup
}

// NewLifecycleController creates an idle controller for sessionID.
func NewLifecycleController(sessionID uuid.UUID, deps ControllerDeps, log zerolog.Logger) *LifecycleController {
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	return &LifecycleController{
		sessionID: sessionID,
		deps:      deps,
		log:       log.With().Str("session_id", sessionID.String()).Logger(),
		state:     domain.LifecycleState{Phase: domain.PhaseIdle},
	}
}

// State returns a copy of the current state.
func (c *LifecycleController) State() domain.LifecycleState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight reports whether an action is pending or submitted.
func (c *LifecycleController) InFlight() bool {
	return c.State().InFlight()
}

// ConfigError returns the configuration error every action would fail with, or nil.
func (c *LifecycleController) ConfigError() *apperror.AppError {
	switch {
	case c.deps.Market.PackageID == "":
		return apperror.ErrPackageNotConfigured()
	case c.deps.Market.MarketplaceID == "":
		return apperror.ErrMarketplaceNotConfigured()
	}
	return nil
}

// Execute runs action to completion on behalf of account and returns the final state.
// Wallet and finality failures are reported in the state, not as an error. The error
// is non-nil only when the action is invalid or another action is in flight; the
// state is then left unchanged.
func (c *LifecycleController) Execute(ctx context.Context, account string, action domain.Action) (domain.LifecycleState, error) {
	st, err := c.begin(action)
	if err != nil || st.Phase != domain.PhasePending {
		return st, err
	}
	return c.drive(ctx, account, action, st), nil
}

// Start begins action and returns once it is pending; the rest runs in the background.
// Cancelling ctx does not abort the action.
func (c *LifecycleController) Start(ctx context.Context, account string, action domain.Action) (domain.LifecycleState, error) {
	st, err := c.begin(action)
	if err != nil || st.Phase != domain.PhasePending {
		return st, err
	}
	bg := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.drive(bg, account, action, st)
	}()
	return st, nil
}

// Wait blocks until every action started with Start has finished.
func (c *LifecycleController) Wait() {
	c.wg.Wait()
}

func (c *LifecycleController) begin(action domain.Action) (domain.LifecycleState, error) {
	cfgErr := c.ConfigError()
	if cfgErr == nil {
		if err := action.Validate(); err != nil {
			return c.State(), apperror.Validation(err.Error())
		}
	}

	c.mu.Lock()
	if c.state.InFlight() {
		st := c.state
		c.mu.Unlock()
		return st, apperror.ErrActionInFlight()
	}
	now := time.Now()
	st := domain.LifecycleState{
		ActionID:  uuid.New(),
		Action:    action.Kind,
		ListingID: action.ListingID,
		Phase:     domain.PhasePending,
		Message:   domain.MsgPending,
		StartedAt: now,
		UpdatedAt: now,
	}
	if cfgErr != nil {
		st.Phase = domain.PhaseFailed
		st.Message = cfgErr.Message
		st.Error = &domain.LifecycleError{Code: cfgErr.Code, Message: cfgErr.Message}
	}
	c.state = st
	c.mu.Unlock()

	c.deps.Metrics.ObserveLifecycle(action.Kind, st.Phase)
	if st.Phase == domain.PhaseFailed {
		c.log.Warn().Str("action", string(action.Kind)).Str("error_code", st.Error.Code).Msg("lifecycle: action rejected, marketplace not configured")
		c.settle(context.Background(), "", st)
	} else {
		c.record(context.Background(), st)
	}
	return st, nil
}

func (c *LifecycleController) drive(ctx context.Context, account string, action domain.Action, st domain.LifecycleState) domain.LifecycleState {
	call := BuildMoveCall(c.deps.Market, action)

	digest, err := c.deps.Wallet.SignAndExecute(ctx, call)
	if err != nil {
		appErr := ClassifyWalletError(err)
		c.log.Warn().Err(err).Str("action", string(action.Kind)).Str("error_code", appErr.Code).Msg("lifecycle: wallet rejected transaction")
		return c.settle(ctx, account, c.fail(appErr))
	}

	st = c.transition(func(s *domain.LifecycleState) {
		s.Phase = domain.PhaseSubmitted
		s.TxDigest = digest
		s.Message = domain.MsgSubmitted
	})
	c.record(ctx, st)

	effects, err := c.deps.Finality.WaitForTransaction(ctx, digest)
	if err != nil {
		c.log.Warn().Err(err).Str("digest", digest).Msg("lifecycle: finality wait failed")
		return c.settle(ctx, account, c.fail(apperror.ErrFinality("", err)))
	}
	if effects == nil {
		return c.settle(ctx, account, c.fail(apperror.ErrFinality("", errors.New("no effects reported"))))
	}
	if !effects.Succeeded() {
		reason := ""
		if code, ok := AbortCode(effects.Status.Error); ok {
			reason, _ = apperror.AbortMessage(code)
		}
		c.log.Warn().Str("digest", digest).Str("ledger_error", effects.Status.Error).Msg("lifecycle: transaction aborted on ledger")
		return c.settle(ctx, account, c.fail(apperror.ErrFinality(reason, errors.New(effects.Status.Error))))
	}

	// A bought listing is hidden before anyone can observe the confirmation.
	if action.Kind == domain.ActionBuyEnergy {
		if err := c.deps.Exclusions.Add(ctx, c.sessionID, action.ListingID); err != nil {
			c.log.Error().Err(err).Str("listing_id", action.ListingID).Msg("lifecycle: failed to persist purchased listing exclusion")
		}
	}

	st = c.transition(func(s *domain.LifecycleState) {
		s.Phase = domain.PhaseConfirmed
		s.Message = domain.MsgConfirmed
		s.CreatedIDs = effects.CreatedIDs
	})
	c.log.Info().Str("action", string(action.Kind)).Str("digest", digest).Msg("lifecycle: transaction confirmed")

	if c.deps.Cascade != nil {
		c.deps.Cascade.Trigger(account, action, st)
	}
	return c.settle(ctx, account, st)
}

// transition applies fn to the current state under the lock and returns the result.
func (c *LifecycleController) transition(fn func(*domain.LifecycleState)) domain.LifecycleState {
	c.mu.Lock()
	fn(&c.state)
	c.state.UpdatedAt = time.Now()
	st := c.state
	c.mu.Unlock()

	c.deps.Metrics.ObserveLifecycle(st.Action, st.Phase)
	return st
}

func (c *LifecycleController) fail(appErr *apperror.AppError) domain.LifecycleState {
	return c.transition(func(s *domain.LifecycleState) {
		s.Phase = domain.PhaseFailed
		s.Message = appErr.Message
		s.Error = &domain.LifecycleError{Code: appErr.Code, Message: appErr.Message}
	})
}

// settle runs the side effects of a terminal state: journal and notification.
func (c *LifecycleController) settle(ctx context.Context, account string, st domain.LifecycleState) domain.LifecycleState {
	c.record(ctx, st)
	if c.deps.Notifier != nil {
		if err := c.deps.Notifier.Notify(ctx, c.sessionID, account, st); err != nil {
			c.log.Warn().Err(err).Str("action_id", st.ActionID.String()).Msg("lifecycle: notification failed")
		}
	}
	return st
}

func (c *LifecycleController) record(ctx context.Context, st domain.LifecycleState) {
	if c.deps.Journal == nil {
		return
	}
	if err := c.deps.Journal.Record(ctx, domain.NewJournalEntry(c.sessionID, st)); err != nil {
		c.log.Warn().Err(err).Str("action_id", st.ActionID.String()).Msg("lifecycle: journal write failed")
	}
}

// BuildMoveCall maps an action onto its marketplace entry function call.
func BuildMoveCall(m domain.Market, a domain.Action) domain.MoveCall {
	call := domain.MoveCall{Target: m.Target(string(a.Kind))}
	switch a.Kind {
	case domain.ActionCreateListing:
		call.Arguments = []domain.CallArg{
			{Kind: domain.ArgObject, Value: m.MarketplaceID},
			{Kind: domain.ArgU64, Value: strconv.FormatInt(a.EnergyAmountWh, 10)},
			{Kind: domain.ArgU64, Value: strconv.FormatInt(a.PricePerKWh, 10)},
			{Kind: domain.ArgU8, Value: strconv.Itoa(int(a.EnergyType))},
			{Kind: domain.ArgString, Value: a.Location},
		}
	case domain.ActionBuyEnergy:
		call.Arguments = []domain.CallArg{
			{Kind: domain.ArgObject, Value: m.MarketplaceID},
			{Kind: domain.ArgObject, Value: a.ListingID},
			{Kind: domain.ArgObject, Value: a.ProfileID},
			{Kind: domain.ArgPayment, Amount: a.Payment},
		}
	case domain.ActionCancelListing:
		call.Arguments = []domain.CallArg{
			{Kind: domain.ArgObject, Value: a.ListingID},
		}
	case domain.ActionUpdatePrice:
		call.Arguments = []domain.CallArg{
			{Kind: domain.ArgObject, Value: a.ListingID},
			{Kind: domain.ArgU64, Value: strconv.FormatInt(a.NewPrice, 10)},
		}
	}
	return call
}

var (
	moveAbortRe = regexp.MustCompile(`MoveAbort\(.*,\s*(\d+)\)`)
	codeRe      = regexp.MustCompile(`\b(\d{4})\b`)
)

// AbortCode finds a marketplace abort code in a wallet or ledger error text.
// An explicit MoveAbort(..., code) wins; otherwise the first known four-digit code is used.
func AbortCode(text string) (int, bool) {
	if m := moveAbortRe.FindStringSubmatch(text); m != nil {
		if code, err := strconv.Atoi(m[1]); err == nil {
			if _, known := apperror.AbortMessage(code); known {
				return code, true
			}
		}
	}
	for _, m := range codeRe.FindAllStringSubmatch(text, -1) {
		code, _ := strconv.Atoi(m[1])
		if _, known := apperror.AbortMessage(code); known {
			return code, true
		}
	}
	return 0, false
}

// ClassifyWalletError turns a sign-and-submit failure into the error shown to the user.
func ClassifyWalletError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if code, ok := AbortCode(err.Error()); ok {
		return apperror.ErrContractAbort(code, err)
	}
	return apperror.ErrTxFailed(err)
}
