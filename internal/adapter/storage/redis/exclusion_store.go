package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ExclusionStore implements ports.ExclusionStore with one sorted set per session,
// scored by insertion time. The oldest ids are evicted beyond capacity.
type ExclusionStore struct {
	client   *goredis.Client
	prefix   string
	capacity int64
	ttl      time.Duration
}

// NewExclusionStore creates a new Redis-backed exclusion store.
func NewExclusionStore(client *goredis.Client, namespace string, capacity int, ttl time.Duration) *ExclusionStore {
	return &ExclusionStore{
		client:   client,
		prefix:   keyspace(namespace, "exclusions"),
		capacity: int64(capacity),
		ttl:      ttl,
	}
}

// Add records listingID for the session and trims the set to capacity.
func (s *ExclusionStore) Add(ctx context.Context, sessionID uuid.UUID, listingID string) error {
	key := s.prefix + sessionID.String()

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZAdd(ctx, key, goredis.Z{Score: float64(time.Now().UnixNano()), Member: listingID})
		if s.capacity > 0 {
			// Keep the newest capacity members.
			pipe.ZRemRangeByRank(ctx, key, 0, -s.capacity-1)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis exclusion add: %w", err)
	}
	return nil
}

// Members returns the session's excluded listing ids, oldest first.
func (s *ExclusionStore) Members(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.prefix+sessionID.String(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis exclusion members: %w", err)
	}
	return ids, nil
}
