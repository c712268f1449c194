package models

import "time"

// Columns lists the classifier inputs in the order Values returns them.
var Columns = []string{
	"focusElo",
	"opponentElo",
	"restDiff",
	"focusForm",
	"opponentForm",
	"focusPythagorean",
	"opponentPythagorean",
}

// FeatureVector is the pre-match view of one game, oriented on the focus team.
// RestDiff is reserved for a rest-day advantage and is always 0.
type FeatureVector struct {
	MatchID     string    `db:"match_id" json:"matchId"`
	Date        time.Time `db:"date" json:"date"`
	HomeTeam    string    `db:"home_team" json:"homeTeam"`
	AwayTeam    string    `db:"away_team" json:"awayTeam"`
	FocusTeam   string    `db:"focus_team" json:"focusTeam"`
	Opponent    string    `db:"opponent" json:"opponent"`
	FocusIsHome bool      `db:"focus_is_home" json:"focusIsHome"`

	FocusElo            float64 `db:"focus_elo" json:"focusElo"`
	OpponentElo         float64 `db:"opponent_elo" json:"opponentElo"`
	RestDiff            float64 `db:"rest_diff" json:"restDiff"`
	FocusForm           float64 `db:"focus_form" json:"focusForm"`
	OpponentForm        float64 `db:"opponent_form" json:"opponentForm"`
	FocusPythagorean    float64 `db:"focus_pythagorean" json:"focusPythagorean"`
	OpponentPythagorean float64 `db:"opponent_pythagorean" json:"opponentPythagorean"`
	Label               int     `db:"label" json:"label"`
}

// Values returns the model inputs in Columns order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.FocusElo,
		f.OpponentElo,
		f.RestDiff,
		f.FocusForm,
		f.OpponentForm,
		f.FocusPythagorean,
		f.OpponentPythagorean,
	}
}

// Map returns the model inputs keyed by column name.
func (f FeatureVector) Map() map[string]float64 {
	values := f.Values()
	out := make(map[string]float64, len(Columns))
	for i, name := range Columns {
		out[name] = values[i]
	}
	return out
}

// Won reports whether the focus team won the match.
func (f FeatureVector) Won() bool {
	return f.Label == 1
}
