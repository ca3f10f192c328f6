package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

var compareAndSwapScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current == false or tonumber(current) ~= tonumber(ARGV[1]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

type KeydbClient struct {
	client *redis.Client
	logger logger.Logger
}

func NewKeyDBClient(cfg config.Cache, log logger.Logger) *KeydbClient {
	return NewKeyDBClientFromRedis(redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           int(cfg.DB),
		PoolSize:     int(cfg.PoolSize),
		MinIdleConns: int(cfg.MinIdleConns),
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxRetries:   int(cfg.MaxRetries),
	}), log)
}

// NewKeyDBClientFromRedis wraps an existing client, such as one pointed at miniredis.
func NewKeyDBClientFromRedis(client *redis.Client, log logger.Logger) *KeydbClient {
	return &KeydbClient{
		client: client,
		logger: log.Component("keydb"),
	}
}

// Redis exposes the underlying client for libraries that speak go-redis directly.
func (c *KeydbClient) Redis() *redis.Client {
	return c.client
}

func (c *KeydbClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *KeydbClient) Close() error {
	return c.client.Close()
}

func (c *KeydbClient) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	result, err := c.client.Get(ctx, key).Bytes()

	c.logger.Debug().
		Str("key", key).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Bool("hit", err == nil).
		Msg("keydb get operation")

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}

		return nil, fmt.Errorf("keydb get %s: %w", key, err)
	}

	return result, nil
}

func (c *KeydbClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("keydb set %s: %w", key, err)
	}

	return nil
}

// Lock reports whether the key was free and is now held until ttl.
func (c *KeydbClient) Lock(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	acquired, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquiring lock: %w", err)
	}

	return acquired, nil
}

func (c *KeydbClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("keydb delete: %w", err)
	}

	return nil
}

// DeleteByPattern removes every key matching pattern and returns how many went.
func (c *KeydbClient) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("scanning keys: %w", err)
		}

		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("deleting keys: %w", err)
			}

			deleted += n
		}

		if next == 0 {
			return deleted, nil
		}

		cursor = next
	}
}

// Counter returns the integer stored at key and the time it was read, or -1
// when the key does not exist.
func (c *KeydbClient) Counter(ctx context.Context, key string) (int64, time.Time, error) {
	value, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, time.Now(), nil
		}

		return 0, time.Time{}, fmt.Errorf("keydb get %s: %w", key, err)
	}

	return value, time.Now(), nil
}

func (c *KeydbClient) SetCounterNX(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	set, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("keydb setnx %s: %w", key, err)
	}

	return set, nil
}

// CompareAndSwapCounter replaces the value at key only while it still equals old.
func (c *KeydbClient) CompareAndSwapCounter(ctx context.Context, key string, old, new int64, ttl time.Duration) (bool, error) {
	result, err := compareAndSwapScript.Run(ctx, c.client, []string{key}, old, new, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("keydb compare and swap %s: %w", key, err)
	}

	return result == 1, nil
}

// IsHealthy checks if the cache is available.
func (c *KeydbClient) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return c.Ping(ctx) == nil
}
