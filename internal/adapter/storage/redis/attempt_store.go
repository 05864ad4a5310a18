package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// AttemptStore implements ports.AttemptStore using Redis SET NX.
type AttemptStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewAttemptStore creates a new Redis-backed attempt store. Marks expire after ttl.
func NewAttemptStore(client *goredis.Client, namespace string, ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		client: client,
		prefix: keyspace(namespace, "profile-attempt"),
		ttl:    ttl,
	}
}

func (s *AttemptStore) key(sessionID uuid.UUID, account string) string {
	return s.prefix + sessionID.String() + ":" + account
}

// MarkAttempted atomically sets the mark if it is absent.
// Returns true only for the caller that set it.
func (s *AttemptStore) MarkAttempted(ctx context.Context, sessionID uuid.UUID, account string) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.key(sessionID, account), 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  s.ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists: someone else made the attempt
			return false, nil
		}
		return false, fmt.Errorf("redis attempt mark: %w", err)
	}
	return result == "OK", nil
}

// Release removes the mark.
func (s *AttemptStore) Release(ctx context.Context, sessionID uuid.UUID, account string) error {
	if err := s.client.Del(ctx, s.key(sessionID, account)).Err(); err != nil {
		return fmt.Errorf("redis attempt release: %w", err)
	}
	return nil
}
