package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pennant-path/internal/database"
	"github.com/yourusername/pennant-path/internal/models"
)

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// ListMatches retrieves matches within a date range in ledger order
func (r *PostgresMatchRepository) ListMatches(ctx context.Context, from, to time.Time) ([]models.MatchRecord, error) {
	query := `
		SELECT id, date, home_team, away_team, home_score, away_score
		FROM matches
		WHERE ($1::date IS NULL OR date >= $1)
		  AND ($2::date IS NULL OR date <= $2)
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.Pool().Query(ctx, query, nullableDate(from), nullableDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}

	matches, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MatchRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan matches: %w", err)
	}
	return matches, nil
}

// UpsertMatches inserts or replaces matches by id in one batch
func (r *PostgresMatchRepository) UpsertMatches(ctx context.Context, matches []models.MatchRecord) error {
	if len(matches) == 0 {
		return nil
	}

	query := `
		INSERT INTO matches (id, date, home_team, away_team, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score
	`

	batch := &pgx.Batch{}
	for _, m := range matches {
		batch.Queue(query, m.ID, m.Date, m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore)
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert matches: %w", err)
		}
		return nil
	})
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
