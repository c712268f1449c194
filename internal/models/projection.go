package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectionStatus describes whether the focus team reached the bracket.
type ProjectionStatus string

const (
	ProjectionQualified    ProjectionStatus = "qualified"
	ProjectionNotQualified ProjectionStatus = "not_qualified"
)

// StageResult is one round on the focus team's path through the bracket.
type StageResult struct {
	Stage            string  `json:"stage"`
	Opponent         string  `json:"opponent,omitempty"`
	BestOf           int     `json:"best_of"`
	GameWinProb      float64 `json:"game_win_prob"`
	SeriesWinProb    float64 `json:"series_win_prob"`
	CumulativeProb   float64 `json:"cumulative_prob"`
	Bye              bool    `json:"bye,omitempty"`
	OpponentWeighted bool    `json:"opponent_weighted,omitempty"`
}

// Projection is the postseason path report for one focus team.
type Projection struct {
	RunID         uuid.UUID          `json:"run_id"`
	FocusTeam     string             `json:"focus_team"`
	Status        ProjectionStatus   `json:"status"`
	Seed          int                `json:"seed,omitempty"`
	Qualifiers    []string           `json:"qualifiers"`
	Stages        []StageResult      `json:"stages,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Trials        int                `json:"trials"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// Qualified reports whether the focus team is in the bracket.
func (p *Projection) Qualified() bool {
	return p != nil && p.Status == ProjectionQualified
}

// Percentages returns cumulative probabilities as percentages rounded to two decimals.
func (p *Projection) Percentages() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(p.Probabilities))
	for stage, prob := range p.Probabilities {
		out[stage] = decimal.NewFromFloat(prob).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return out
}

// Champion returns the probability of winning the last recorded stage.
func (p *Projection) Champion() float64 {
	if !p.Qualified() || len(p.Stages) == 0 {
		return 0
	}
	return p.Stages[len(p.Stages)-1].CumulativeProb
}
