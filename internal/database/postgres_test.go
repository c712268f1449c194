package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pennant-path/internal/config"
)

func TestHealthCheck(t *testing.T) {
	db := SetupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, db.HealthCheck(ctx))
	require.NoError(t, db.Ping(ctx))
	assert.NotNil(t, db.Pool())
}

func TestEnsureSchemaIsRepeatable(t *testing.T) {
	db := SetupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, EnsureSchema(ctx, db))
}

func TestInitializeUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := &config.Config{Database: config.DatabaseConfig{
		Host:    "127.0.0.1",
		Port:    1,
		Name:    "pennant",
		User:    "pennant",
		SSLMode: "disable",
	}}
	db, err := Initialize(ctx, cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}
