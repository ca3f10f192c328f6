package ports

import (
	"context"
	"time"

	"github.com/architeacher/gadgets/pkg/idempotency"
)

// IdempotencyStore keeps responses of write requests keyed by Idempotency-Key.
type IdempotencyStore interface {
	// Get returns nil, nil if the key does not exist.
	Get(ctx context.Context, key string) (*idempotency.Record, error)

	Set(ctx context.Context, key string, record idempotency.Record, ttl time.Duration) error

	// SetLock reports false when another request holds the key.
	SetLock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	ReleaseLock(ctx context.Context, key string) error
}
