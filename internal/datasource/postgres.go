package datasource

import (
	"context"
	"time"

	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/repository"
)

// PostgresSource reads matches from the matches table
type PostgresSource struct {
	repo     repository.MatchRepository
	from, to time.Time
}

// NewPostgresSource creates a repository-backed source. Zero bounds are open.
func NewPostgresSource(repo repository.MatchRepository, from, to time.Time) *PostgresSource {
	return &PostgresSource{repo: repo, from: from, to: to}
}

// Name returns the source name
func (s *PostgresSource) Name() string {
	return "postgres"
}

// LoadMatches lists matches in date then id order
func (s *PostgresSource) LoadMatches(ctx context.Context) ([]models.MatchRecord, error) {
	return s.repo.ListMatches(ctx, s.from, s.to)
}
