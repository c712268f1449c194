package models

// Standing is one row of a final table.
type Standing struct {
	Rank        int     `json:"rank"`
	Team        string  `json:"team"`
	Played      int     `json:"played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Ties        int     `json:"ties"`
	RunsFor     int     `json:"runs_for"`
	RunsAgainst int     `json:"runs_against"`
	Strength    float64 `json:"strength"`
}

// WinPct returns wins over decided games, 0 when nothing was decided.
func (s Standing) WinPct() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided)
}

// RunDiff returns runs scored minus runs allowed.
func (s Standing) RunDiff() int {
	return s.RunsFor - s.RunsAgainst
}

// TeamOutlook is a team's projected regular season.
type TeamOutlook struct {
	Team              string  `json:"team"`
	MeanWinProb       float64 `json:"mean_win_prob"`
	ProjectedWins     int     `json:"projected_wins"`
	ProjectedLosses   int     `json:"projected_losses"`
	Rank              int     `json:"rank"`
	PlayoffLikelihood float64 `json:"playoff_likelihood"`
}
