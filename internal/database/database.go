package database

import (
	"context"
	"fmt"
	"time"

	"quickbite/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Startup ping policy. A database started alongside the API may accept
// connections a few seconds after we do.
var (
	pingAttempts = 5
	pingInterval = time.Second
)

// NewPool creates a PostgreSQL connection pool for the meal plan store and
// waits until the server answers a ping.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "postgres").Logger()

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pingWithRetry(ctx, pool.Ping, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// pingWithRetry calls ping up to pingAttempts times, pausing pingInterval
// between failures. It gives up early when ctx is done.
func pingWithRetry(ctx context.Context, ping func(context.Context) error, logger zerolog.Logger) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}

		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", pingInterval).
			Msg("database not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return err
}
