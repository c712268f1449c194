// Package repository implements PostgreSQL access to match history and
// extracted feature vectors.
package repository

import (
	"fmt"

	"github.com/yourusername/pennant-path/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Match   MatchRepository
	Feature FeatureRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Match:   NewPostgresMatchRepository(db),
		Feature: NewPostgresFeatureRepository(db),
	}, nil
}
