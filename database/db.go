package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"fieldlog/config"
)

var (
	// ErrNotFound covers both "does not exist" and "exists but not owned by
	// the caller". The two are deliberately indistinguishable so lookups never
	// leak existence to non-owners.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateLogDate means a daily log already exists for the
	// (project, log date) pair. Backed by a unique constraint, so two
	// concurrent submissions for the same date cannot both land.
	ErrDuplicateLogDate = errors.New("a daily log already exists for this date")
)

type DB struct {
	Pool   *pgxpool.Pool
	logger zerolog.Logger
}

func Connect(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection established")
	return &DB{Pool: pool, logger: logger}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
	db.logger.Info().Msg("database connection closed")
}
