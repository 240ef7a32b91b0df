// Package db stores candidate evaluation records in PostgreSQL, with an in-memory variant for local runs and tests.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const (
	maxPoolConns    = 8
	maxConnIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// DB is a PostgreSQL-backed evaluation store
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against databaseURL and verifies the server answers.
// Pool sizing in the URL (pool_max_conns and friends) overrides the defaults here.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Cause: err}
	}
	if cfg.ConnConfig.RuntimeParams["application_name"] == "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = "candidate-screener"
	}
	if !strings.Contains(databaseURL, "pool_max_conns") {
		cfg.MaxConns = maxPoolConns
	}
	cfg.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Cause: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, &PersistenceError{Op: "ping", Cause: err}
	}
	return &DB{pool: pool}, nil
}

// Close releases every pooled connection
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema applies the embedded DDL. Every statement is idempotent.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return &PersistenceError{Op: "migrate", Cause: fmt.Errorf("apply schema: %w", err)}
	}
	return nil
}

// Schema returns the DDL applied by EnsureSchema
func Schema() string {
	return schemaSQL
}
