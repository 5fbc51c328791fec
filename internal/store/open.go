package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options selects and configures a driver for Open.
type Options struct {
	Driver string // memory, postgres, or surreal

	PostgresURL     string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration

	Surreal SurrealConfig
}

// Open builds the configured driver. The returned cleanup releases
// driver resources and is safe to call once.
func Open(ctx context.Context, opts Options) (Store, func(), error) {
	switch strings.ToLower(opts.Driver) {
	case "memory":
		return NewMemory(), func() {}, nil

	case "postgres":
		poolConfig, err := pgxpool.ParseConfig(opts.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse database URL: %w", err)
		}
		if opts.MaxConns > 0 {
			poolConfig.MaxConns = int32(opts.MaxConns)
		}
		if opts.MinConns > 0 {
			poolConfig.MinConns = int32(opts.MinConns)
		}
		if opts.MaxConnLifetime > 0 {
			poolConfig.MaxConnLifetime = opts.MaxConnLifetime
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}

		pg := NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	case "surreal":
		sdb, err := NewSurreal(opts.Surreal)
		if err != nil {
			return nil, nil, err
		}
		return sdb, sdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
