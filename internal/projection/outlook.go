// Package projection builds the offseason preview: projected records and
// playoff likelihood for every team from pairwise win probabilities.
package projection

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/models"
)

// DefaultGamesPerSeason is the regular season length.
const DefaultGamesPerSeason = 144

// ErrTooFewTeams indicates an outlook was requested for fewer than two teams
var ErrTooFewTeams = errors.New("outlook needs at least two teams")

// PairSource answers single-game win probabilities.
type PairSource interface {
	WinProbability(ctx context.Context, team, opponent string) (float64, error)
}

// Outlook projects a season from a probability source.
type Outlook struct {
	source         PairSource
	gamesPerSeason int
	log            *logger.ProjectionLogger
}

// NewOutlook creates an outlook. A non-positive gamesPerSeason uses the default.
func NewOutlook(source PairSource, gamesPerSeason int, log logrus.FieldLogger) *Outlook {
	if gamesPerSeason <= 0 {
		gamesPerSeason = DefaultGamesPerSeason
	}
	return &Outlook{
		source:         source,
		gamesPerSeason: gamesPerSeason,
		log:            logger.NewProjectionLogger(log),
	}
}

// Project scores every ordered pair of teams. A team's mean probability over
// its opponents times the season length gives projected wins. Teams are
// ranked by mean probability and rank r of n maps to playoff likelihood
// 1-(r-1)/n.
func (o *Outlook) Project(ctx context.Context, teams []string) ([]models.TeamOutlook, error) {
	if len(teams) < 2 {
		return nil, ErrTooFewTeams
	}

	out := make([]models.TeamOutlook, 0, len(teams))
	for _, team := range teams {
		sum := 0.0
		for _, opponent := range teams {
			if opponent == team {
				continue
			}
			p, err := o.source.WinProbability(ctx, team, opponent)
			if err != nil {
				return nil, fmt.Errorf("outlook %s vs %s: %w", team, opponent, err)
			}
			sum += p
		}

		mean := sum / float64(len(teams)-1)
		wins := int(math.Round(mean * float64(o.gamesPerSeason)))
		out = append(out, models.TeamOutlook{
			Team:            team,
			MeanWinProb:     mean,
			ProjectedWins:   wins,
			ProjectedLosses: o.gamesPerSeason - wins,
		})
	}

	slices.SortFunc(out, func(a, b models.TeamOutlook) int {
		if c := cmp.Compare(b.MeanWinProb, a.MeanWinProb); c != 0 {
			return c
		}
		return strings.Compare(a.Team, b.Team)
	})

	n := float64(len(out))
	for i := range out {
		out[i].Rank = i + 1
		out[i].PlayoffLikelihood = 1 - float64(i)/n
	}

	o.log.LogOutlookComplete(len(out), o.gamesPerSeason, out[0].Team)
	return out, nil
}
