package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/geo"
	"energy-marketplace/internal/core/market"

	"github.com/google/uuid"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenService handles session JWT operations.
type TokenService interface {
	Generate(sessionID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	SessionID uuid.UUID
}

// LifecycleNotifier is told about every action that reaches a terminal phase.
type LifecycleNotifier interface {
	Notify(ctx context.Context, sessionID uuid.UUID, account string, state domain.LifecycleState) error
}

// Metrics receives operational measurements. Implementations must be safe for concurrent use.
type Metrics interface {
	ObserveLedgerSource(source string, took time.Duration, err error)
	ObserveLifecycle(action domain.ActionKind, phase domain.Phase)
	ObserveCascade(action domain.ActionKind, attempts int, observed bool)
	SetAggregateSize(n int)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) ObserveLedgerSource(string, time.Duration, error) {}
func (NopMetrics) ObserveLifecycle(domain.ActionKind, domain.Phase) {}
func (NopMetrics) ObserveCascade(domain.ActionKind, int, bool) {}
func (NopMetrics) SetAggregateSize(int) {}

// --- Service Ports (Business Logic) ---

// MarketService serves read-only marketplace views.
type MarketService interface {
	Browse(ctx context.Context, sessionID uuid.UUID, account string, q market.Query) (*BrowseResult, error)
	Nearest(ctx context.Context, sessionID uuid.UUID, account string, origin *geo.Point, limit int) ([]market.Ranked, error)
	Listing(ctx context.Context, id string) (*domain.Listing, error)
	OwnListings(ctx context.Context, account string) ([]domain.Listing, error)
	Transactions(ctx context.Context, account string) ([]TransactionView, error)
	Purchases(ctx context.Context, account string) ([]domain.PurchaseEvent, error)
	Profile(ctx context.Context, account string) (*domain.UserProfile, error)
}

// BrowseResult is a filtered listing view. Loading is set while some discovery
// sources have not answered yet.
type BrowseResult struct {
	Listings []market.Ranked
	Loading  bool
}

// TransactionView is a receipt with the time it should be displayed at.
type TransactionView struct {
	domain.EnergyTransaction
	DisplayTimeMs int64
}

// ActionService runs ledger-mutating actions for a session.
type ActionService interface {
	Open(ctx context.Context) (*SessionToken, error)
	Start(ctx context.Context, sessionID uuid.UUID, action domain.Action) (domain.LifecycleState, error)
	State(sessionID uuid.UUID) domain.LifecycleState
	History(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.JournalEntry, error)
	EnsureProfile(ctx context.Context, sessionID uuid.UUID, account string) (*BootstrapResult, error)
	// Account returns the wallet's connected account, failing with WAL_002 when none is.
	Account(ctx context.Context) (string, error)
}

// SessionToken is returned when a session is opened.
type SessionToken struct {
	SessionID uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// BootstrapResult reports what EnsureProfile found or started.
type BootstrapResult struct {
	Profile   *domain.UserProfile
	Attempted bool                   // a create_profile action was started by this call
	State     *domain.LifecycleState // state of the started action
}
