package repos

import (
	"context"
	"time"

	"github.com/architeacher/gadgets/internal/infrastructure"
	"github.com/throttled/throttled/v2"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimitStore implements throttled.GCRAStoreCtx on top of KeyDB.
type RateLimitStore struct {
	client *infrastructure.KeydbClient
	prefix string
}

var _ throttled.GCRAStoreCtx = (*RateLimitStore)(nil)

func NewRateLimitStore(client *infrastructure.KeydbClient) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		prefix: rateLimitKeyPrefix,
	}
}

func (s *RateLimitStore) GetWithTime(ctx context.Context, key string) (int64, time.Time, error) {
	return s.client.Counter(ctx, s.prefix+key)
}

func (s *RateLimitStore) SetIfNotExistsWithTTL(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	return s.client.SetCounterNX(ctx, s.prefix+key, value, ttl)
}

func (s *RateLimitStore) CompareAndSwapWithTTL(ctx context.Context, key string, old, new int64, ttl time.Duration) (bool, error) {
	return s.client.CompareAndSwapCounter(ctx, s.prefix+key, old, new, ttl)
}
