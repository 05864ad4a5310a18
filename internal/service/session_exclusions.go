package service

import (
	"context"
	"sync"

	"energy-marketplace/internal/core/ports"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionExclusions implements ports.ExclusionStore over a backing store and keeps
// every id it is given in process as well. A purchase recorded here stays hidden
// for the life of the process even when the backing store rejects the write or
// cannot be read.
type SessionExclusions struct {
	backing ports.ExclusionStore
	log     zerolog.Logger

	mu    sync.Mutex
	local map[uuid.UUID]mapset.Set[string]
}

// NewSessionExclusions wraps backing.
func NewSessionExclusions(backing ports.ExclusionStore, log zerolog.Logger) *SessionExclusions {
	return &SessionExclusions{
		backing: backing,
		log:     log,
		local:   make(map[uuid.UUID]mapset.Set[string]),
	}
}

// Add records listingID locally, then in the backing store. The local record
// holds even when the backing write fails; the error is still returned.
func (s *SessionExclusions) Add(ctx context.Context, sessionID uuid.UUID, listingID string) error {
	s.mu.Lock()
	set, ok := s.local[sessionID]
	if !ok {
		set = mapset.NewThreadUnsafeSet[string]()
		s.local[sessionID] = set
	}
	set.Add(listingID)
	s.mu.Unlock()

	return s.backing.Add(ctx, sessionID, listingID)
}

// Members returns the backing store's ids followed by any local ids it lacks.
// A backing read failure degrades to the local ids.
func (s *SessionExclusions) Members(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	ids, err := s.backing.Members(ctx, sessionID)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("exclusions: backing store unavailable, using local set")
		ids = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.local[sessionID]
	if !ok || set.Cardinality() == 0 {
		if ids == nil {
			return []string{}, nil
		}
		return ids, nil
	}

	seen := mapset.NewThreadUnsafeSet(ids...)
	out := append([]string{}, ids...)
	for _, id := range set.ToSlice() {
		if !seen.Contains(id) {
			out = append(out, id)
		}
	}
	return out, nil
}

// Forget drops the session's local ids and, when the backing store keeps
// in-process state too, its ids there.
func (s *SessionExclusions) Forget(sessionID uuid.UUID) {
	s.mu.Lock()
	delete(s.local, sessionID)
	s.mu.Unlock()

	if f, ok := s.backing.(sessionForgetter); ok {
		f.Forget(sessionID)
	}
}
