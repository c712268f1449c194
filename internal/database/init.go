package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/yourusername/pennant-path/internal/config"
)

//go:embed schema.sql
var schema string

// Initialize creates a database connection pool, checks that it answers
// queries and makes sure the match and feature tables exist
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates any missing tables. It is safe to run repeatedly.
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
