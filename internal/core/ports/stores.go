package ports

//go:generate mockgen -source=stores.go -destination=mocks/mock_stores.go -package=mocks

import (
	"context"
	"time"

	"energy-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// ExclusionStore holds the listing ids a session has bought. They are hidden from
// every listing view of that session until the process restarts.
type ExclusionStore interface {
	Add(ctx context.Context, sessionID uuid.UUID, listingID string) error
	Members(ctx context.Context, sessionID uuid.UUID) ([]string, error)
}

// AttemptStore records profile-creation attempts per (session, account).
type AttemptStore interface {
	// MarkAttempted atomically marks the pair and returns true only for the first caller.
	MarkAttempted(ctx context.Context, sessionID uuid.UUID, account string) (bool, error)
	// Release clears a mark whose attempt never started.
	Release(ctx context.Context, sessionID uuid.UUID, account string) error
}

// SnapshotCache stores serialized read views.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ActionJournal persists lifecycle states.
type ActionJournal interface {
	// Record inserts the entry or updates the existing entry with the same id.
	Record(ctx context.Context, entry *domain.JournalEntry) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.JournalEntry, error)
}
