package features

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/rating"
)

var roster = []string{"Tigers", "Bears", "Eagles", "Wolves"}

func game(id string, date time.Time, home, away string, homeScore, awayScore int) models.MatchRecord {
	return models.MatchRecord{ID: id, Date: date, HomeTeam: home, AwayTeam: away, HomeScore: homeScore, AwayScore: awayScore}
}

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func sampleSeason() []models.MatchRecord {
	return []models.MatchRecord{
		game("1", day(1), "Tigers", "Bears", 5, 2),
		game("2", day(1), "Eagles", "Wolves", 3, 4),
		game("3", day(2), "Bears", "Tigers", 1, 4),
		game("4", day(3), "Wolves", "Tigers", 6, 0),
		game("5", day(3), "Eagles", "Bears", 2, 2),
		game("6", day(4), "Tigers", "Eagles", 3, 3),
	}
}

func TestRunEmitsFocusMatchesOnly(t *testing.T) {
	extractor := NewExtractor(roster)

	var ids []string
	for v, err := range extractor.Run(sampleSeason(), "Tigers") {
		require.NoError(t, err)
		ids = append(ids, v.MatchID)
		assert.Equal(t, "Tigers", v.FocusTeam)
		assert.Zero(t, v.RestDiff)
	}
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids)
}

func TestRunUsesPreUpdateSnapshot(t *testing.T) {
	vectors, _, err := NewExtractor(roster).Collect(sampleSeason(), "Tigers")
	require.NoError(t, err)
	require.Len(t, vectors, 4)

	first := vectors[0]
	assert.Equal(t, 1500.0, first.FocusElo)
	assert.Equal(t, 1500.0, first.OpponentElo)
	assert.Equal(t, 0.5, first.FocusForm)
	assert.Equal(t, 0.5, first.FocusPythagorean)
	assert.Equal(t, 1, first.Label)

	// Second Tigers game: Tigers are away at Bears after the 1510/1490 update.
	second := vectors[1]
	assert.False(t, second.FocusIsHome)
	assert.Equal(t, "Bears", second.Opponent)
	assert.InDelta(t, 1510.0, second.FocusElo, 1e-9)
	assert.InDelta(t, 1490.0, second.OpponentElo, 1e-9)
	assert.Equal(t, 1.0, second.FocusForm)
	assert.Equal(t, 0.0, second.OpponentForm)
	assert.InDelta(t, 25.0/29.0, second.FocusPythagorean, 1e-12)
	assert.Equal(t, 1, second.Label)

	third := vectors[2]
	assert.Equal(t, 0, third.Label)

	// Tie: focus team at home does not win.
	fourth := vectors[3]
	assert.True(t, fourth.FocusIsHome)
	assert.Equal(t, 0, fourth.Label)
}

func TestRunSeasonOpenerSeesResetState(t *testing.T) {
	matches := []models.MatchRecord{
		game("1", time.Date(2023, time.September, 30, 0, 0, 0, 0, time.UTC), "Tigers", "Bears", 5, 2),
		game("2", time.Date(2024, time.March, 23, 0, 0, 0, 0, time.UTC), "Tigers", "Bears", 3, 1),
	}

	vectors, _, err := NewExtractor(roster).Collect(matches, "Tigers")
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	opener := vectors[1]
	assert.Equal(t, 0.5, opener.FocusForm)
	assert.Equal(t, 0.5, opener.OpponentForm)
	assert.Equal(t, 0.5, opener.FocusPythagorean)
	assert.Equal(t, 0.5, opener.OpponentPythagorean)
	// Strength carries across the boundary.
	assert.InDelta(t, 1510.0, opener.FocusElo, 1e-9)
	assert.InDelta(t, 1490.0, opener.OpponentElo, 1e-9)
}

func TestRunSkippedMatchDoesNotOpenSeason(t *testing.T) {
	matches := []models.MatchRecord{
		game("1", time.Date(2023, time.September, 30, 0, 0, 0, 0, time.UTC), "Tigers", "Bears", 5, 2),
		game("2", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "Tigers", "Comets", 9, 0),
		game("3", time.Date(2024, time.March, 23, 0, 0, 0, 0, time.UTC), "Tigers", "Bears", 3, 1),
	}

	vectors, _, err := NewExtractor(roster).Collect(matches, "Tigers")
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, "3", vectors[1].MatchID)
	assert.Equal(t, 0.5, vectors[1].FocusForm)
	assert.Equal(t, 0.5, vectors[1].FocusPythagorean)
}

func TestRunBounds(t *testing.T) {
	for v, err := range NewExtractor(roster).Run(sampleSeason(), "Bears") {
		require.NoError(t, err)
		for _, ratio := range []float64{v.FocusForm, v.OpponentForm, v.FocusPythagorean, v.OpponentPythagorean} {
			assert.GreaterOrEqual(t, ratio, 0.0)
			assert.LessOrEqual(t, ratio, 1.0)
		}
	}
}

func TestRunIsRestartable(t *testing.T) {
	seq := NewExtractor(roster).Run(sampleSeason(), "Tigers")

	collect := func() []models.FeatureVector {
		var out []models.FeatureVector
		for v, err := range seq {
			require.NoError(t, err)
			out = append(out, v)
		}
		return out
	}

	first := collect()
	second := collect()
	assert.Equal(t, first, second)
}

func TestRunStopsEarly(t *testing.T) {
	count := 0
	for _, err := range NewExtractor(roster).Run(sampleSeason(), "Tigers") {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestRunUnknownFocusTeam(t *testing.T) {
	var errs []error
	for _, err := range NewExtractor(roster).Run(sampleSeason(), "Comets") {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], rating.ErrTeamNotFound)
}

func TestRunOutOfOrder(t *testing.T) {
	matches := sampleSeason()
	matches = append(matches, game("7", day(2), "Tigers", "Wolves", 1, 0))

	var emitted int
	var lastErr error
	for _, err := range NewExtractor(roster).Run(matches, "Tigers") {
		if err != nil {
			lastErr = err
			continue
		}
		emitted++
	}
	assert.Equal(t, 4, emitted)
	assert.ErrorIs(t, lastErr, rating.ErrOutOfOrder)

	_, _, err := NewExtractor(roster).Collect(matches, "Tigers")
	assert.ErrorIs(t, err, rating.ErrOutOfOrder)
}

func TestRunSkipHook(t *testing.T) {
	matches := []models.MatchRecord{
		game("1", day(1), "Tigers", "Comets", 5, 2),
		game("2", day(2), "Tigers", "Bears", -1, 2),
		game("3", day(3), "Tigers", "Bears", 4, 2),
	}

	var skipped []string
	extractor := NewExtractor(roster, WithOnSkip(func(m models.MatchRecord, w rating.SkipWarning) {
		skipped = append(skipped, fmt.Sprintf("%s:%s", m.ID, w.Reason))
	}))

	vectors, ledger, err := extractor.Collect(matches, "Tigers")
	require.NoError(t, err)
	assert.Equal(t, []string{"1:unknown_team", "2:negative_score"}, skipped)
	require.Len(t, vectors, 1)
	assert.Equal(t, "3", vectors[0].MatchID)
	assert.Equal(t, 1500.0, vectors[0].FocusElo)
	assert.Equal(t, 1, ledger.Applied())
}

func TestCollectReturnsFinalLedger(t *testing.T) {
	extractor := NewExtractor(roster, WithLedgerOptions(rating.WithKFactor(20)))

	_, ledger, err := extractor.Collect(sampleSeason(), "Tigers")
	require.NoError(t, err)

	folded, err := extractor.Fold(sampleSeason())
	require.NoError(t, err)

	assert.Equal(t, folded.Ratings(), ledger.Ratings())
	assert.Equal(t, len(sampleSeason()), ledger.Applied())
}
