package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pennant-path/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func match(id string, date time.Time, home, away string, homeScore, awayScore int) models.MatchRecord {
	return models.MatchRecord{
		ID:        id,
		Date:      date,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

func newTestLedger(t *testing.T, teams ...string) *Ledger {
	t.Helper()
	ledger, err := NewLedger(teams)
	require.NoError(t, err)
	return ledger
}

func TestNewLedger(t *testing.T) {
	tests := []struct {
		name    string
		teams   []string
		wantErr error
	}{
		{name: "valid roster", teams: []string{"A", "B", "C"}},
		{name: "empty roster", teams: nil, wantErr: models.ErrEmptyRoster},
		{name: "duplicate team", teams: []string{"A", "B", "A"}, wantErr: models.ErrDuplicateTeam},
		{name: "blank team", teams: []string{"A", ""}, wantErr: models.ErrInvalidMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := NewLedger(tt.teams)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ledger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.teams, ledger.Teams())
			for _, team := range tt.teams {
				snap, err := ledger.Snapshot(team)
				require.NoError(t, err)
				assert.Equal(t, Snapshot{Strength: 1500, Form: 0.5, Pythagorean: 0.5}, snap)
			}
		})
	}
}

func TestLedgerOptions(t *testing.T) {
	ledger, err := NewLedger([]string{"A", "B"},
		WithInitialStrength(1000),
		WithKFactor(32),
		WithFormWindow(2),
		WithLogger(nil),
	)
	require.NoError(t, err)

	update, err := ledger.Apply(match("1", day(2024, 4, 1), "A", "B", 3, 1))
	require.NoError(t, err)
	assert.InDelta(t, 16.0, update.HomeDelta, 1e-9)

	for i, date := range []time.Time{day(2024, 4, 2), day(2024, 4, 3)} {
		_, err := ledger.Apply(match(string(rune('2'+i)), date, "A", "B", 0, 1))
		require.NoError(t, err)
	}
	state, err := ledger.State("A")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, state.RecentResults)
}

func TestApplyWorkedExample(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")

	update, err := ledger.Apply(match("1", day(2024, 4, 1), "A", "B", 5, 2))
	require.NoError(t, err)
	assert.True(t, update.Applied)
	assert.InDelta(t, 0.5, update.ExpectedHome, 1e-12)

	ratings := ledger.Ratings()
	assert.InDelta(t, 1510.0, ratings["A"], 1e-9)
	assert.InDelta(t, 1490.0, ratings["B"], 1e-9)

	// B hosts and loses 1-4; the expectation uses the updated strengths.
	update, err = ledger.Apply(match("2", day(2024, 4, 2), "B", "A", 1, 4))
	require.NoError(t, err)
	assert.InDelta(t, 0.471249436, update.ExpectedHome, 1e-9)

	ratings = ledger.Ratings()
	assert.InDelta(t, 1519.424988722, ratings["A"], 1e-6)
	assert.InDelta(t, 1480.575011278, ratings["B"], 1e-6)

	stateA, err := ledger.State("A")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, stateA.RecentResults)
	assert.Equal(t, 9, stateA.RunsFor)
	assert.Equal(t, 3, stateA.RunsAgainst)

	stateB, err := ledger.State("B")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, stateB.RecentResults)
	assert.Equal(t, 3, stateB.RunsFor)
	assert.Equal(t, 9, stateB.RunsAgainst)
}

func TestApplyZeroSum(t *testing.T) {
	teams := []string{"A", "B", "C", "D"}
	ledger := newTestLedger(t, teams...)

	games := []models.MatchRecord{
		match("1", day(2024, 4, 1), "A", "B", 7, 3),
		match("2", day(2024, 4, 1), "C", "D", 2, 6),
		match("3", day(2024, 4, 2), "A", "C", 1, 0),
		match("4", day(2024, 4, 3), "D", "B", 4, 4),
		match("5", day(2024, 4, 4), "B", "A", 9, 8),
	}

	for _, g := range games {
		before := ledger.Ratings()
		update, err := ledger.Apply(g)
		require.NoError(t, err)
		require.True(t, update.Applied)

		after := ledger.Ratings()
		homeChange := after[g.HomeTeam] - before[g.HomeTeam]
		awayChange := after[g.AwayTeam] - before[g.AwayTeam]
		assert.InDelta(t, 0, homeChange+awayChange, 1e-9, "match %s", g.ID)
		assert.InDelta(t, update.HomeDelta, homeChange, 1e-9)
	}

	total := 0.0
	for _, strength := range ledger.Ratings() {
		total += strength
	}
	assert.InDelta(t, 1500.0*float64(len(teams)), total, 1e-6)
}

func TestApplyTieIsHomeLoss(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")

	update, err := ledger.Apply(match("1", day(2024, 4, 1), "A", "B", 3, 3))
	require.NoError(t, err)
	assert.True(t, update.Applied)
	assert.InDelta(t, -10.0, update.HomeDelta, 1e-9)

	stateA, _ := ledger.State("A")
	stateB, _ := ledger.State("B")
	assert.Equal(t, []int{0}, stateA.RecentResults)
	assert.Equal(t, []int{1}, stateB.RecentResults)
}

func TestApplySkips(t *testing.T) {
	tests := []struct {
		name   string
		match  models.MatchRecord
		reason SkipReason
	}{
		{name: "unknown away team", match: match("x", day(2024, 4, 5), "A", "Comets", 3, 2), reason: SkipUnknownTeam},
		{name: "unknown home team", match: match("x", day(2024, 4, 5), "Comets", "B", 3, 2), reason: SkipUnknownTeam},
		{name: "negative score", match: match("x", day(2024, 4, 5), "A", "B", -1, 2), reason: SkipNegativeScore},
		{name: "team plays itself", match: match("x", day(2024, 4, 5), "A", "A", 3, 2), reason: SkipSelfMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newTestLedger(t, "A", "B")
			_, err := ledger.Apply(match("1", day(2024, 4, 1), "A", "B", 5, 2))
			require.NoError(t, err)

			before := ledger.Ratings()
			stateBefore, _ := ledger.State("A")
			lastBefore, _ := ledger.LastProcessed()

			update, err := ledger.Apply(tt.match)
			require.NoError(t, err)
			assert.False(t, update.Applied)
			require.NotNil(t, update.Warning)
			assert.Equal(t, tt.reason, update.Warning.Reason)
			assert.Equal(t, "x", update.Warning.MatchID)
			assert.Contains(t, update.Warning.String(), string(tt.reason))

			assert.Equal(t, before, ledger.Ratings())
			stateAfter, _ := ledger.State("A")
			assert.Equal(t, stateBefore, stateAfter)
			lastAfter, _ := ledger.LastProcessed()
			assert.Equal(t, lastBefore, lastAfter)
			assert.Equal(t, 1, ledger.Applied())
		})
	}
}

func TestApplyOutOfOrder(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")
	_, err := ledger.Apply(match("1", day(2024, 5, 1), "A", "B", 5, 2))
	require.NoError(t, err)

	// Same day is allowed.
	_, err = ledger.Apply(match("2", day(2024, 5, 1), "B", "A", 5, 2))
	require.NoError(t, err)

	before := ledger.Ratings()
	_, err = ledger.Apply(match("3", day(2024, 4, 30), "A", "B", 5, 2))
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.Equal(t, before, ledger.Ratings())
}

func TestApplySeasonReset(t *testing.T) {
	ledger := newTestLedger(t, "A", "B", "C")

	update, err := ledger.Apply(match("1", day(2023, 9, 28), "A", "B", 6, 2))
	require.NoError(t, err)
	assert.False(t, update.SeasonReset, "first match never resets")
	_, err = ledger.Apply(match("2", day(2023, 9, 30), "B", "A", 3, 1))
	require.NoError(t, err)

	strengthBefore := ledger.Ratings()

	update, err = ledger.Apply(match("3", day(2024, 3, 23), "C", "A", 0, 0))
	require.NoError(t, err)
	assert.True(t, update.SeasonReset)

	// B did not play in the new season, so its state shows the bare reset.
	stateB, err := ledger.State("B")
	require.NoError(t, err)
	assert.Empty(t, stateB.RecentResults)
	assert.Zero(t, stateB.RunsFor)
	assert.Zero(t, stateB.RunsAgainst)
	assert.Equal(t, strengthBefore["B"], stateB.Strength)

	// A's strength moved only by the new-season match.
	stateA, err := ledger.State("A")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, stateA.RecentResults)
	assert.Zero(t, stateA.RunsFor)
	assert.Zero(t, stateA.RunsAgainst)
	assert.InDelta(t, strengthBefore["A"]+update.AwayDelta, stateA.Strength, 1e-9)

	last, ok := ledger.LastProcessed()
	assert.True(t, ok)
	assert.Equal(t, day(2024, 3, 23), last)
}

func TestPrepareResetsBeforeSnapshot(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")

	_, err := ledger.Apply(match("1", day(2023, 9, 30), "A", "B", 5, 2))
	require.NoError(t, err)
	strength, err := ledger.Snapshot("A")
	require.NoError(t, err)

	opener := match("2", day(2024, 3, 23), "A", "B", 1, 4)
	update, err := ledger.Prepare(opener)
	require.NoError(t, err)
	assert.True(t, update.SeasonReset)
	assert.False(t, update.Applied)

	for _, team := range []string{"A", "B"} {
		snap, err := ledger.Snapshot(team)
		require.NoError(t, err)
		assert.Equal(t, 0.5, snap.Form, team)
		assert.Equal(t, 0.5, snap.Pythagorean, team)
	}
	snapA, err := ledger.Snapshot("A")
	require.NoError(t, err)
	assert.Equal(t, strength.Strength, snapA.Strength)
	assert.Equal(t, 1, ledger.Applied())

	// The season already advanced, so neither a second Prepare nor Apply resets again.
	update, err = ledger.Prepare(opener)
	require.NoError(t, err)
	assert.False(t, update.SeasonReset)
	update, err = ledger.Apply(opener)
	require.NoError(t, err)
	assert.True(t, update.Applied)
	assert.False(t, update.SeasonReset)

	stateB, err := ledger.State("B")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, stateB.RecentResults)
	assert.Equal(t, 4, stateB.RunsFor)
}

func TestPrepareSkippedMatchDoesNotReset(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")

	_, err := ledger.Apply(match("1", day(2023, 9, 30), "A", "B", 5, 2))
	require.NoError(t, err)

	update, err := ledger.Prepare(match("2", day(2024, 3, 23), "A", "Comets", 1, 0))
	require.NoError(t, err)
	require.NotNil(t, update.Warning)
	assert.Equal(t, SkipUnknownTeam, update.Warning.Reason)
	assert.False(t, update.SeasonReset)

	stateA, err := ledger.State("A")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, stateA.RecentResults)
	assert.Equal(t, 5, stateA.RunsFor)
}

func TestPrepareOutOfOrder(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")

	_, err := ledger.Apply(match("1", day(2024, 5, 1), "A", "B", 5, 2))
	require.NoError(t, err)

	_, err = ledger.Prepare(match("2", day(2024, 4, 30), "A", "B", 1, 0))
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestSnapshotUnknownTeam(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")

	_, err := ledger.Snapshot("Comets")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = ledger.State("Comets")
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.False(t, ledger.Has("Comets"))
	assert.True(t, ledger.Has("A"))
}

func TestSnapshotBounds(t *testing.T) {
	ledger := newTestLedger(t, "A", "B")
	scores := [][2]int{{10, 0}, {0, 10}, {1, 1}, {0, 0}, {13, 2}, {2, 13}}
	for i, s := range scores {
		_, err := ledger.Apply(match(string(rune('a'+i)), day(2024, 4, i+1), "A", "B", s[0], s[1]))
		require.NoError(t, err)

		for _, team := range []string{"A", "B"} {
			snap, err := ledger.Snapshot(team)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, snap.Form, 0.0)
			assert.LessOrEqual(t, snap.Form, 1.0)
			assert.GreaterOrEqual(t, snap.Pythagorean, 0.0)
			assert.LessOrEqual(t, snap.Pythagorean, 1.0)
		}
	}
}
