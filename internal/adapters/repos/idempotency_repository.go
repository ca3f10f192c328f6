package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/architeacher/gadgets/internal/infrastructure"
	"github.com/architeacher/gadgets/pkg/idempotency"
)

const (
	lockSuffix = ":lock"
	lockValue  = "processing"
)

// IdempotencyRepository stores replayable responses in KeyDB.
type IdempotencyRepository struct {
	client *infrastructure.KeydbClient
}

func NewIdempotencyRepository(client *infrastructure.KeydbClient) *IdempotencyRepository {
	return &IdempotencyRepository{client: client}
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*idempotency.Record, error) {
	data, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting cached response: %w", err)
	}

	record, err := idempotency.UnmarshalRecord(data)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *IdempotencyRepository) Set(ctx context.Context, key string, record idempotency.Record, ttl time.Duration) error {
	data, err := record.Marshal()
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("setting cached response: %w", err)
	}

	return nil
}

func (r *IdempotencyRepository) SetLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.Lock(ctx, key+lockSuffix, lockValue, ttl)
}

func (r *IdempotencyRepository) ReleaseLock(ctx context.Context, key string) error {
	if err := r.client.Delete(ctx, key+lockSuffix); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}

	return nil
}
