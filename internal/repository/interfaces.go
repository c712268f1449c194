package repository

import (
	"context"
	"time"

	"github.com/yourusername/pennant-path/internal/models"
)

// MatchRepository defines the interface for match history access
type MatchRepository interface {
	// ListMatches returns matches dated within [from, to], ordered by date
	// then id. A zero bound is open.
	ListMatches(ctx context.Context, from, to time.Time) ([]models.MatchRecord, error)
	UpsertMatches(ctx context.Context, matches []models.MatchRecord) error
}

// FeatureRepository defines the interface for persisted feature vectors
type FeatureRepository interface {
	UpsertFeatures(ctx context.Context, vectors []models.FeatureVector) error
}
