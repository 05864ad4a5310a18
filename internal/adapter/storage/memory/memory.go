// Package memory holds process-local stores used when Redis is disabled.
// Their contents do not survive a restart.
package memory

import (
	"context"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

type exclusionSet struct {
	ids   mapset.Set[string]
	order []string
}

// ExclusionStore implements ports.ExclusionStore. Each session keeps at most
// capacity ids; the oldest is evicted first.
type ExclusionStore struct {
	capacity int

	mu       sync.Mutex
	sessions map[uuid.UUID]*exclusionSet
}

// NewExclusionStore creates an empty exclusion store. capacity <= 0 means unbounded.
func NewExclusionStore(capacity int) *ExclusionStore {
	return &ExclusionStore{
		capacity: capacity,
		sessions: make(map[uuid.UUID]*exclusionSet),
	}
}

// Add records listingID for the session.
func (s *ExclusionStore) Add(_ context.Context, sessionID uuid.UUID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sessions[sessionID]
	if !ok {
		set = &exclusionSet{ids: mapset.NewThreadUnsafeSet[string]()}
		s.sessions[sessionID] = set
	}
	if !set.ids.Add(listingID) {
		return nil
	}
	set.order = append(set.order, listingID)
	if s.capacity > 0 && len(set.order) > s.capacity {
		evicted := set.order[0]
		set.order = set.order[1:]
		set.ids.Remove(evicted)
	}
	return nil
}

// Members returns the session's excluded ids, oldest first.
func (s *ExclusionStore) Members(_ context.Context, sessionID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sessions[sessionID]
	if !ok {
		return []string{}, nil
	}
	return append([]string(nil), set.order...), nil
}

// Forget drops a session's exclusions.
func (s *ExclusionStore) Forget(sessionID uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

type attemptKey struct {
	session uuid.UUID
	account string
}

// AttemptStore implements ports.AttemptStore.
type AttemptStore struct {
	marked mapset.Set[attemptKey]
}

// NewAttemptStore creates an empty attempt store.
func NewAttemptStore() *AttemptStore {
	return &AttemptStore{marked: mapset.NewSet[attemptKey]()}
}

// MarkAttempted returns true only for the first caller per session and account.
func (s *AttemptStore) MarkAttempted(_ context.Context, sessionID uuid.UUID, account string) (bool, error) {
	return s.marked.Add(attemptKey{sessionID, account}), nil
}

// Release clears the mark.
func (s *AttemptStore) Release(_ context.Context, sessionID uuid.UUID, account string) error {
	s.marked.Remove(attemptKey{sessionID, account})
	return nil
}
