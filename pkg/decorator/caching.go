package decorator

import (
	"context"
	"time"
)

type (
	CacheStatus string

	cacheStatusKey struct{}

	CacheConfig struct {
		Enabled bool
		TTL     time.Duration
		// WriteTimeout bounds how long a miss waits for the cache write.
		WriteTimeout time.Duration
	}

	CacheGetter[Q Query, R Result] interface {
		Get(ctx context.Context, query Q) (R, bool, error)
	}

	CacheSetter[Q Query, R Result] interface {
		Set(ctx context.Context, query Q, result R, ttl time.Duration) error
	}

	Cache[Q Query, R Result] interface {
		CacheGetter[Q, R]
		CacheSetter[Q, R]
	}

	// CacheObserver is told the outcome of every lookup.
	CacheObserver func(ctx context.Context, status CacheStatus)

	queryCachingDecorator[Q Query, R Result] struct {
		base     QueryHandler[Q, R]
		cache    Cache[Q, R]
		config   CacheConfig
		observer CacheObserver
	}
)

const (
	CacheStatusHit    CacheStatus = "HIT"
	CacheStatusMiss   CacheStatus = "MISS"
	CacheStatusBypass CacheStatus = "BYPASS"
	CacheStatusError  CacheStatus = "ERROR"

	defaultCacheWriteTimeout = 500 * time.Millisecond
)

func WithCacheStatus(ctx context.Context, status CacheStatus) context.Context {
	return context.WithValue(ctx, cacheStatusKey{}, status)
}

// GetCacheStatus reports BYPASS when no lookup happened.
func GetCacheStatus(ctx context.Context) CacheStatus {
	if status, ok := ctx.Value(cacheStatusKey{}).(CacheStatus); ok {
		return status
	}

	return CacheStatusBypass
}

// NewQueryCachingDecorator serves results from cache and stores fresh ones.
// Cache failures never fail the query.
func NewQueryCachingDecorator[Q Query, R Result](
	base QueryHandler[Q, R],
	cache Cache[Q, R],
	config CacheConfig,
	observers ...CacheObserver,
) QueryHandler[Q, R] {
	decorated := queryCachingDecorator[Q, R]{
		base:   base,
		cache:  cache,
		config: config,
	}

	if len(observers) > 0 {
		decorated.observer = observers[0]
	}

	return decorated
}

func (d queryCachingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	if !d.config.Enabled || d.cache == nil {
		d.observe(ctx, CacheStatusBypass)

		return d.base.Execute(WithCacheStatus(ctx, CacheStatusBypass), query)
	}

	cached, hit, err := d.cache.Get(ctx, query)

	switch {
	case err != nil:
		d.observe(ctx, CacheStatusError)
	case hit:
		d.observe(ctx, CacheStatusHit)

		return cached, nil
	default:
		d.observe(ctx, CacheStatusMiss)
	}

	result, err := d.base.Execute(WithCacheStatus(ctx, CacheStatusMiss), query)
	if err != nil {
		var zero R

		return zero, err
	}

	timeout := d.config.WriteTimeout
	if timeout <= 0 {
		timeout = defaultCacheWriteTimeout
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	_ = d.cache.Set(writeCtx, query, result, d.config.TTL)

	return result, nil
}

func (d queryCachingDecorator[Q, R]) observe(ctx context.Context, status CacheStatus) {
	if d.observer != nil {
		d.observer(ctx, status)
	}
}
