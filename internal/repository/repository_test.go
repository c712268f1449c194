package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pennant-path/internal/database"
	"github.com/yourusername/pennant-path/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

func TestMatchRepositoryRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	matches := []models.MatchRecord{
		{ID: "b", Date: day(2), HomeTeam: "Tigers", AwayTeam: "Bears", HomeScore: 3, AwayScore: 1},
		{ID: "a", Date: day(2), HomeTeam: "Eagles", AwayTeam: "Wolves", HomeScore: 0, AwayScore: 2},
		{ID: "c", Date: day(1), HomeTeam: "Bears", AwayTeam: "Eagles", HomeScore: 5, AwayScore: 5},
	}
	require.NoError(t, repos.Match.UpsertMatches(ctx, matches))

	got, err := repos.Match.ListMatches(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})

	ranged, err := repos.Match.ListMatches(ctx, day(2), day(2))
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	matches[0].HomeScore = 9
	require.NoError(t, repos.Match.UpsertMatches(ctx, matches[:1]))
	got, err = repos.Match.ListMatches(ctx, day(2), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 9, got[1].HomeScore)
}

func TestFeatureRepositoryUpsert(t *testing.T) {
	db := database.SetupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	vector := models.FeatureVector{
		MatchID: "m1", Date: day(1), HomeTeam: "Tigers", AwayTeam: "Bears",
		FocusTeam: "Tigers", Opponent: "Bears", FocusIsHome: true,
		FocusElo: 1500, OpponentElo: 1500, FocusForm: 0.5, OpponentForm: 0.5,
		FocusPythagorean: 0.5, OpponentPythagorean: 0.5, Label: 1,
	}
	require.NoError(t, repos.Feature.UpsertFeatures(ctx, []models.FeatureVector{vector}))

	vector.Label = 0
	require.NoError(t, repos.Feature.UpsertFeatures(ctx, []models.FeatureVector{vector}))

	var count, label int
	require.NoError(t, db.Pool().QueryRow(ctx, "SELECT COUNT(*), MAX(label) FROM match_features").Scan(&count, &label))
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, label)
}

func TestUpsertEmptyIsNoop(t *testing.T) {
	// No pool is touched for empty input.
	repo := &PostgresFeatureRepository{}
	assert.NoError(t, repo.UpsertFeatures(context.Background(), nil))

	matches := &PostgresMatchRepository{}
	assert.NoError(t, matches.UpsertMatches(context.Background(), nil))
}
