package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ActionResolver fills in buy arguments the caller left out.
type ActionResolver interface {
	Listing(ctx context.Context, id string) (*domain.Listing, error)
	Profile(ctx context.Context, account string) (*domain.UserProfile, error)
}

// sessionForgetter is implemented by stores that keep per-session state in
// process and can release it once a session is pruned.
type sessionForgetter interface {
	Forget(sessionID uuid.UUID)
}

type session struct {
	ctrl     *LifecycleController
	lastSeen time.Time
}

// SessionManager implements ports.ActionService. It owns one lifecycle controller
// per browsing session.
type SessionManager struct {
	deps      ControllerDeps
	tokens    ports.TokenService
	resolver  ActionResolver
	bootstrap *ProfileBootstrapper
	log       zerolog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewSessionManager creates a new session manager.
func NewSessionManager(
	deps ControllerDeps,
	tokens ports.TokenService,
	resolver ActionResolver,
	bootstrap *ProfileBootstrapper,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		deps:      deps,
		tokens:    tokens,
		resolver:  resolver,
		bootstrap: bootstrap,
		log:       log,
		sessions:  make(map[uuid.UUID]*session),
	}
}

// Open creates a session and issues its token.
func (m *SessionManager) Open(ctx context.Context) (*ports.SessionToken, error) {
	id := uuid.New()
	token, expiresAt, err := m.tokens.Generate(id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	m.controller(id)

	m.log.Info().Str("session_id", id.String()).Msg("session opened")
	return &ports.SessionToken{SessionID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Start begins action for the session's connected account.
func (m *SessionManager) Start(ctx context.Context, sessionID uuid.UUID, action domain.Action) (domain.LifecycleState, error) {
	ctrl := m.controller(sessionID)
	if ctrl.InFlight() {
		return ctrl.State(), apperror.ErrActionInFlight()
	}
	if action.Kind == domain.ActionBuyEnergy && action.ListingID == "" {
		return ctrl.State(), apperror.Validation("listing id is required")
	}

	// A misconfigured marketplace fails the action without contacting the wallet.
	var account string
	if ctrl.ConfigError() == nil {
		if action.Kind != domain.ActionBuyEnergy {
			if err := action.Validate(); err != nil {
				return ctrl.State(), apperror.Validation(err.Error())
			}
		}
		var err error
		if account, err = m.account(ctx); err != nil {
			return ctrl.State(), err
		}
		if action.Kind == domain.ActionBuyEnergy {
			if action, err = m.prepareBuy(ctx, account, action); err != nil {
				return ctrl.State(), err
			}
		}
	}
	return ctrl.Start(ctx, account, action)
}

// State returns the session's current lifecycle state.
func (m *SessionManager) State(sessionID uuid.UUID) domain.LifecycleState {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return domain.LifecycleState{Phase: domain.PhaseIdle}
	}
	return s.ctrl.State()
}

// History returns the session's journaled actions, newest first.
func (m *SessionManager) History(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	if m.deps.Journal == nil {
		return []domain.JournalEntry{}, nil
	}
	entries, err := m.deps.Journal.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return entries, nil
}

// EnsureProfile resolves the connected account when account is empty and makes
// sure a profile exists or is being created.
func (m *SessionManager) EnsureProfile(ctx context.Context, sessionID uuid.UUID, account string) (*ports.BootstrapResult, error) {
	if account == "" {
		var err error
		if account, err = m.account(ctx); err != nil {
			return nil, err
		}
	}
	return m.bootstrap.Ensure(ctx, sessionID, account, m.controller(sessionID))
}

// Account returns the wallet's connected account.
func (m *SessionManager) Account(ctx context.Context) (string, error) {
	return m.account(ctx)
}

// Prune drops sessions idle for longer than idle that have nothing in flight,
// together with their in-process exclusions.
func (m *SessionManager) Prune(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()

	forgetter, _ := m.deps.Exclusions.(sessionForgetter)
	n := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) && !s.ctrl.InFlight() {
			delete(m.sessions, id)
			if forgetter != nil {
				forgetter.Forget(id)
			}
			n++
		}
	}
	return n
}

// RunPruner prunes idle sessions every interval until ctx is done.
func (m *SessionManager) RunPruner(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Prune(idle); n > 0 {
				m.log.Debug().Int("pruned", n).Msg("idle sessions pruned")
			}
		}
	}
}

// Wait blocks until every background action of every session has finished.
func (m *SessionManager) Wait() {
	m.mu.Lock()
	ctrls := make([]*LifecycleController, 0, len(m.sessions))
	for _, s := range m.sessions {
		ctrls = append(ctrls, s.ctrl)
	}
	m.mu.Unlock()

	for _, c := range ctrls {
		c.Wait()
	}
}

// controller returns the session's controller, creating it on first use. Sessions
// outlive the process only through their token, so an unknown id starts idle.
func (m *SessionManager) controller(id uuid.UUID) *LifecycleController {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &session{ctrl: NewLifecycleController(id, m.deps, m.log)}
		m.sessions[id] = s
	}
	s.lastSeen = time.Now()
	return s.ctrl
}

func (m *SessionManager) account(ctx context.Context) (string, error) {
	account, err := m.deps.Wallet.CurrentAccount(ctx)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return "", appErr
		}
		return "", apperror.ErrWalletUnavailable(err)
	}
	if account == "" {
		return "", apperror.ErrNoConnectedAccount()
	}
	return account, nil
}

// prepareBuy computes the payment from the listing and looks up the buyer's
// profile when the caller did not supply them.
func (m *SessionManager) prepareBuy(ctx context.Context, account string, action domain.Action) (domain.Action, error) {
	if action.Payment == 0 {
		l, err := m.resolver.Listing(ctx, action.ListingID)
		if err != nil {
			return action, err
		}
		if !l.Active {
			return action, apperror.ErrContractAbort(1001, nil)
		}
		action.Payment = l.TotalPrice()
	}
	if action.ProfileID == "" {
		p, err := m.resolver.Profile(ctx, account)
		if err != nil {
			return action, err
		}
		if p == nil {
			return action, apperror.ErrNotFound("Profile")
		}
		action.ProfileID = p.ID
	}
	return action, nil
}
