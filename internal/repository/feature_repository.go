package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pennant-path/internal/database"
	"github.com/yourusername/pennant-path/internal/models"
)

// PostgresFeatureRepository implements FeatureRepository for PostgreSQL
type PostgresFeatureRepository struct {
	db *database.DB
}

// NewPostgresFeatureRepository creates a new feature repository
func NewPostgresFeatureRepository(db *database.DB) FeatureRepository {
	return &PostgresFeatureRepository{db: db}
}

// UpsertFeatures stores vectors keyed by match id, replacing earlier runs
func (r *PostgresFeatureRepository) UpsertFeatures(ctx context.Context, vectors []models.FeatureVector) error {
	if len(vectors) == 0 {
		return nil
	}

	query := `
		INSERT INTO match_features (
			match_id, date, home_team, away_team, focus_team, opponent, focus_is_home,
			focus_elo, opponent_elo, rest_diff, focus_form, opponent_form,
			focus_pythagorean, opponent_pythagorean, label
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (match_id) DO UPDATE SET
			date = EXCLUDED.date,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			focus_team = EXCLUDED.focus_team,
			opponent = EXCLUDED.opponent,
			focus_is_home = EXCLUDED.focus_is_home,
			focus_elo = EXCLUDED.focus_elo,
			opponent_elo = EXCLUDED.opponent_elo,
			rest_diff = EXCLUDED.rest_diff,
			focus_form = EXCLUDED.focus_form,
			opponent_form = EXCLUDED.opponent_form,
			focus_pythagorean = EXCLUDED.focus_pythagorean,
			opponent_pythagorean = EXCLUDED.opponent_pythagorean,
			label = EXCLUDED.label,
			updated_at = now()
	`

	batch := &pgx.Batch{}
	for _, v := range vectors {
		batch.Queue(query,
			v.MatchID, v.Date, v.HomeTeam, v.AwayTeam, v.FocusTeam, v.Opponent, v.FocusIsHome,
			v.FocusElo, v.OpponentElo, v.RestDiff, v.FocusForm, v.OpponentForm,
			v.FocusPythagorean, v.OpponentPythagorean, v.Label,
		)
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert features: %w", err)
		}
		return nil
	})
}
