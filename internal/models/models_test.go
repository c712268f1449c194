package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMatchRecordOutcome(t *testing.T) {
	m := MatchRecord{HomeTeam: "Tigers", AwayTeam: "Bears", HomeScore: 3, AwayScore: 3}
	assert.False(t, m.HomeWon())
	assert.False(t, m.AwayWon())
	assert.True(t, m.Involves("Bears"))
	assert.False(t, m.Involves("Eagles"))
	assert.Equal(t, "Tigers", m.Opponent("Bears"))
	assert.Equal(t, "Bears", m.Opponent("Tigers"))
}

func TestFeatureVectorValuesFollowColumns(t *testing.T) {
	f := FeatureVector{
		FocusElo: 1510, OpponentElo: 1490, FocusForm: 0.6, OpponentForm: 0.4,
		FocusPythagorean: 0.55, OpponentPythagorean: 0.45, Label: 1,
	}
	values := f.Values()
	assert.Len(t, values, len(Columns))

	m := f.Map()
	for i, name := range Columns {
		assert.Equal(t, values[i], m[name], name)
	}
	assert.Zero(t, m["restDiff"])
	assert.True(t, f.Won())
}

func TestProjectionPercentages(t *testing.T) {
	p := &Projection{
		Status: ProjectionQualified,
		Probabilities: map[string]float64{
			"semifinal": 0.123456,
			"final":     0.0456,
		},
		Stages: []StageResult{{Stage: "semifinal", CumulativeProb: 0.123456}, {Stage: "final", CumulativeProb: 0.0456}},
	}

	pct := p.Percentages()
	assert.True(t, decimal.RequireFromString("12.35").Equal(pct["semifinal"]))
	assert.Equal(t, "4.56", pct["final"].StringFixed(2))
	assert.InDelta(t, 0.0456, p.Champion(), 1e-12)

	var missing *Projection
	assert.False(t, missing.Qualified())
}

func TestStandingRatios(t *testing.T) {
	s := Standing{Wins: 3, Losses: 1, Ties: 2, RunsFor: 20, RunsAgainst: 12}
	assert.Equal(t, 0.75, s.WinPct())
	assert.Equal(t, 8, s.RunDiff())
	assert.Zero(t, Standing{Ties: 2}.WinPct())
}
