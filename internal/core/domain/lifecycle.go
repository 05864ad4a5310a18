package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Phase is the lifecycle phase of a ledger-mutating action.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"   // waiting for the wallet
	PhaseSubmitted Phase = "submitted" // digest known, waiting for finality
	PhaseConfirmed Phase = "confirmed"
	PhaseFailed    Phase = "failed"
)

// Status messages shown to the user for each phase.
const (
	MsgPending   = "Waiting for wallet confirmation..."
	MsgSubmitted = "Transaction submitted, waiting for confirmation..."
	MsgConfirmed = "Success! Transaction confirmed."
)

// ActionKind names the marketplace entry function an action calls.
type ActionKind string

const (
	ActionCreateProfile ActionKind = "create_profile"
	ActionCreateListing ActionKind = "create_listing"
	ActionBuyEnergy     ActionKind = "buy_energy"
	ActionCancelListing ActionKind = "cancel_listing"
	ActionUpdatePrice   ActionKind = "update_price"
)

// Action is a user request to mutate ledger state.
type Action struct {
	Kind ActionKind

	// create_listing
	EnergyAmountWh int64
	PricePerKWh    int64
	EnergyType     EnergyType
	Location       string

	// buy_energy, cancel_listing, update_price
	ListingID string
	ProfileID string
	Payment   int64
	NewPrice  int64
}

// Validate checks the user-supplied arguments before the wallet is involved.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionCreateProfile:
		return nil
	case ActionCreateListing:
		if a.EnergyAmountWh <= 0 {
			return errInvalidAction("energy amount must be positive")
		}
		if a.PricePerKWh <= 0 {
			return errInvalidAction("price per kWh must be positive")
		}
		if !a.EnergyType.Valid() {
			return errInvalidAction("unknown energy type")
		}
		if strings.TrimSpace(a.Location) == "" {
			return errInvalidAction("location is required")
		}
	case ActionBuyEnergy:
		if a.ListingID == "" || a.ProfileID == "" {
			return errInvalidAction("listing id and profile id are required")
		}
		if a.Payment <= 0 {
			return errInvalidAction("payment must be positive")
		}
	case ActionCancelListing:
		if a.ListingID == "" {
			return errInvalidAction("listing id is required")
		}
	case ActionUpdatePrice:
		if a.ListingID == "" {
			return errInvalidAction("listing id is required")
		}
		if a.NewPrice <= 0 {
			return errInvalidAction("new price must be positive")
		}
	default:
		return errInvalidAction("unknown action " + string(a.Kind))
	}
	return nil
}

// ActionError is returned by Action.Validate.
type ActionError struct{ Reason string }

func (e *ActionError) Error() string { return e.Reason }

func errInvalidAction(reason string) error { return &ActionError{Reason: reason} }

// LifecycleError is the classified failure carried by a failed state.
type LifecycleError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LifecycleState is a snapshot of the session's current or most recent action.
// Each new action replaces the previous state entirely.
type LifecycleState struct {
	ActionID   uuid.UUID       `json:"action_id"`
	Action     ActionKind      `json:"action,omitempty"`
	ListingID  string          `json:"listing_id,omitempty"`
	Phase      Phase           `json:"phase"`
	TxDigest   string          `json:"tx_digest,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      *LifecycleError `json:"error,omitempty"`
	CreatedIDs []string        `json:"created_ids,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// InFlight reports whether the state blocks a new action.
func (s LifecycleState) InFlight() bool {
	return s.Phase == PhasePending || s.Phase == PhaseSubmitted
}

// IsTerminal returns true once the action has been confirmed or has failed.
func (s LifecycleState) IsTerminal() bool {
	return s.Phase == PhaseConfirmed || s.Phase == PhaseFailed
}

// JournalEntry is the persisted record of a lifecycle state.
type JournalEntry struct {
	ID        uuid.UUID  `json:"id"`
	SessionID uuid.UUID  `json:"session_id"`
	Action    ActionKind `json:"action"`
	ListingID string     `json:"listing_id,omitempty"`
	Phase     Phase      `json:"phase"`
	TxDigest  string     `json:"tx_digest,omitempty"`
	Message   string     `json:"message,omitempty"`
	ErrorCode string     `json:"error_code,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewJournalEntry captures state for persistence.
func NewJournalEntry(sessionID uuid.UUID, s LifecycleState) *JournalEntry {
	e := &JournalEntry{
		ID:        s.ActionID,
		SessionID: sessionID,
		Action:    s.Action,
		ListingID: s.ListingID,
		Phase:     s.Phase,
		TxDigest:  s.TxDigest,
		Message:   s.Message,
		CreatedAt: s.StartedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Error != nil {
		e.ErrorCode = s.Error.Code
	}
	return e
}
