package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// NewDBPool создаёт пул соединений к локальной базе сессий.
// База может подниматься дольше бота, поэтому ждём её с backoff.
func NewDBPool(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	backoff := retry.WithMaxDuration(30*time.Second, retry.NewFibonacci(500*time.Millisecond))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			logger.Warn("Database not ready, retrying", zap.Error(pingErr))
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("✅ Database connection established")
	return pool, nil
}
