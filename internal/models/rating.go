package models

// TeamRatingState is the ledger's view of one team at a point in the season.
// RecentResults is ordered oldest first and holds 1 for a win, 0 otherwise.
type TeamRatingState struct {
	Team          string  `json:"team"`
	Strength      float64 `json:"strength"`
	RecentResults []int   `json:"recentResults"`
	RunsFor       int     `json:"runsFor"`
	RunsAgainst   int     `json:"runsAgainst"`
}
