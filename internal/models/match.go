package models

import "time"

// MatchRecord represents one completed game as delivered by the upstream loader.
// Records are consumed in non-decreasing Date order.
type MatchRecord struct {
	ID        string    `db:"id" json:"id"`
	Date      time.Time `db:"date" json:"date"`
	HomeTeam  string    `db:"home_team" json:"homeTeam"`
	AwayTeam  string    `db:"away_team" json:"awayTeam"`
	HomeScore int       `db:"home_score" json:"homeScore"`
	AwayScore int       `db:"away_score" json:"awayScore"`
}

// HomeWon reports whether the home side scored strictly more runs.
func (m MatchRecord) HomeWon() bool {
	return m.HomeScore > m.AwayScore
}

// AwayWon reports whether the away side scored strictly more runs.
func (m MatchRecord) AwayWon() bool {
	return m.AwayScore > m.HomeScore
}

// Involves reports whether team played in the match.
func (m MatchRecord) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Opponent returns the other side of the match for team.
func (m MatchRecord) Opponent(team string) string {
	if m.HomeTeam == team {
		return m.AwayTeam
	}
	return m.HomeTeam
}
