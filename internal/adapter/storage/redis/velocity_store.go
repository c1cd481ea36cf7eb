package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// VelocityStore implements ports.VelocityStore: fixed-window request
// counters backed by Redis, used by the admission middleware to sample
// per-email and per-IP velocity.
type VelocityStore struct {
	client *goredis.Client
	prefix string
}

// NewVelocityStore creates a new Redis-backed velocity store.
func NewVelocityStore(client *goredis.Client) *VelocityStore {
	return &VelocityStore{
		client: client,
		prefix: "velocity:",
	}
}

// Increment bumps the counter for scope+id in the current window and returns
// the new count. It uses a fixed-window counter: INCR + EXPIRE on a key
// scoped by windowID, where windowID = time / windowDuration.
func (s *VelocityStore) Increment(ctx context.Context, scope, id string, window time.Duration) (int64, error) {
	windowID := time.Now().Unix() / int64(window.Seconds())
	key := fmt.Sprintf("%s%s:%s:%d", s.prefix, scope, id, windowID)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis velocity incr: %w", err)
	}

	// Set expiry only on first increment (new window)
	if count == 1 {
		s.client.Expire(ctx, key, window+time.Second) // +1s safety margin
	}

	return count, nil
}
