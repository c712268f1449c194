// Package standings ranks teams at the end of a season.
package standings

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yourusername/pennant-path/internal/models"
)

// Source selects how a table is ordered.
type Source string

// Ranking sources
const (
	SourceWins   Source = "wins"
	SourceElo    Source = "elo"
	SourceManual Source = "manual"
)

// ErrUnknownSource indicates an unsupported ranking source
var ErrUnknownSource = errors.New("unknown ranking source")

// FromMatches tallies matches between roster teams and orders the table by
// wins, then win percentage, then run differential, then team name.
// Matches the rating ledger would skip are ignored here too.
func FromMatches(matches []models.MatchRecord, roster []string) []models.Standing {
	rows := make(map[string]*models.Standing, len(roster))
	for _, team := range roster {
		rows[team] = &models.Standing{Team: team}
	}

	for _, m := range matches {
		home, away := rows[m.HomeTeam], rows[m.AwayTeam]
		if home == nil || away == nil || home == away || m.HomeScore < 0 || m.AwayScore < 0 {
			continue
		}

		home.Played++
		away.Played++
		home.RunsFor += m.HomeScore
		home.RunsAgainst += m.AwayScore
		away.RunsFor += m.AwayScore
		away.RunsAgainst += m.HomeScore

		switch {
		case m.HomeWon():
			home.Wins++
			away.Losses++
		case m.AwayWon():
			away.Wins++
			home.Losses++
		default:
			home.Ties++
			away.Ties++
		}
	}

	table := make([]models.Standing, 0, len(rows))
	for _, team := range roster {
		table = append(table, *rows[team])
	}
	slices.SortStableFunc(table, func(a, b models.Standing) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		if c := cmp.Compare(b.WinPct(), a.WinPct()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.RunDiff(), a.RunDiff()); c != 0 {
			return c
		}
		return strings.Compare(a.Team, b.Team)
	})
	return assignRanks(table)
}

// ByStrength orders teams by final rating, highest first.
func ByStrength(ratings map[string]float64) []models.Standing {
	table := make([]models.Standing, 0, len(ratings))
	for team, strength := range ratings {
		table = append(table, models.Standing{Team: team, Strength: strength})
	}
	slices.SortFunc(table, func(a, b models.Standing) int {
		if c := cmp.Compare(b.Strength, a.Strength); c != 0 {
			return c
		}
		return strings.Compare(a.Team, b.Team)
	})
	return assignRanks(table)
}

// Manual returns the table in the given order.
func Manual(order []string) []models.Standing {
	table := make([]models.Standing, len(order))
	for i, team := range order {
		table[i] = models.Standing{Team: team}
	}
	return assignRanks(table)
}

// Rank builds a table from the chosen source. Strength is filled from
// ratings whenever it is available.
func Rank(source Source, matches []models.MatchRecord, roster []string, ratings map[string]float64, manualOrder []string) ([]models.Standing, error) {
	var table []models.Standing
	switch source {
	case SourceWins, "":
		table = FromMatches(matches, roster)
	case SourceElo:
		table = ByStrength(ratings)
	case SourceManual:
		table = Manual(manualOrder)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	for i := range table {
		if strength, ok := ratings[table[i].Team]; ok {
			table[i].Strength = strength
		}
	}
	return table, nil
}

// Qualifiers returns the names of the top n teams.
func Qualifiers(table []models.Standing, n int) []string {
	if n > len(table) {
		n = len(table)
	}
	out := make([]string, 0, n)
	for _, row := range table[:n] {
		out = append(out, row.Team)
	}
	return out
}

// LatestSeason returns the matches played in the calendar year of the last match.
func LatestSeason(matches []models.MatchRecord) []models.MatchRecord {
	if len(matches) == 0 {
		return nil
	}
	year := matches[len(matches)-1].Date.Year()
	var out []models.MatchRecord
	for _, m := range matches {
		if m.Date.Year() == year {
			out = append(out, m)
		}
	}
	return out
}

func assignRanks(table []models.Standing) []models.Standing {
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}
