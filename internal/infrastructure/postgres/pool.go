package postgres

import (
	"context"
	"fmt"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool connects to PostgreSQL, retrying with exponential backoff while the
// database is still starting up.
func NewPool(ctx context.Context, cfg config.Database, backoffCfg config.Backoff, log logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parsing connection string: %w", err))
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = backoffCfg.BaseDelay
	expBackoff.Multiplier = backoffCfg.Multiplier
	expBackoff.RandomizationFactor = backoffCfg.Jitter
	expBackoff.MaxInterval = backoffCfg.MaxDelay

	attempt := 0

	return backoff.Retry(ctx, func() (*pgxpool.Pool, error) {
		attempt++

		pool, err := connect(ctx, poolConfig)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("database not reachable yet")

			return nil, err
		}

		return pool, nil
	}, backoff.WithBackOff(expBackoff), backoff.WithMaxTries(cfg.ConnectRetries+1))
}

func connect(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}
