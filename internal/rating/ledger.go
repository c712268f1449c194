// Package rating maintains per-team strength, form and run totals as match
// results are folded in chronological order.
package rating

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/metrics"
	"github.com/yourusername/pennant-path/internal/models"
)

// Snapshot is a read-only view of the inputs a team contributes to a feature vector.
type Snapshot struct {
	Strength    float64
	Form        float64
	Pythagorean float64
}

// Update reports the effect of one Prepare or Apply call.
type Update struct {
	Applied      bool
	Warning      *SkipWarning
	ExpectedHome float64
	HomeDelta    float64
	AwayDelta    float64
	SeasonReset  bool
}

type teamState struct {
	strength    float64
	form        *formWindow
	runsFor     int
	runsAgainst int
}

// Ledger is the single owner of every team's rating state. It is not safe
// for concurrent use.
type Ledger struct {
	teams           []string
	states          map[string]*teamState
	initialStrength float64
	kFactor         float64
	formWindow      int
	lastProcessed   time.Time
	seasonMark      time.Time
	applied         int
	log             *logger.RatingLogger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithInitialStrength sets the strength every team starts from.
func WithInitialStrength(strength float64) Option {
	return func(l *Ledger) {
		if strength > 0 {
			l.initialStrength = strength
		}
	}
}

// WithKFactor sets the update step size.
func WithKFactor(k float64) Option {
	return func(l *Ledger) {
		if k > 0 {
			l.kFactor = k
		}
	}
}

// WithFormWindow sets how many recent results feed the form ratio.
func WithFormWindow(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.formWindow = n
		}
	}
}

// WithLogger sets the logger used for skip warnings and season resets.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Ledger) {
		l.log = logger.NewRatingLogger(log)
	}
}

// NewLedger creates a ledger for a fixed roster.
func NewLedger(teams []string, opts ...Option) (*Ledger, error) {
	if len(teams) == 0 {
		return nil, models.ErrEmptyRoster
	}

	l := &Ledger{
		initialStrength: DefaultInitialStrength,
		kFactor:         DefaultKFactor,
		formWindow:      DefaultFormWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.NewRatingLogger(nil)
	}

	l.teams = make([]string, 0, len(teams))
	l.states = make(map[string]*teamState, len(teams))
	for _, team := range teams {
		if team == "" {
			return nil, fmt.Errorf("%w: empty team name", models.ErrInvalidMatch)
		}
		if _, exists := l.states[team]; exists {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateTeam, team)
		}
		l.teams = append(l.teams, team)
		l.states[team] = &teamState{
			strength: l.initialStrength,
			form:     newFormWindow(l.formWindow),
		}
	}

	return l, nil
}

// Snapshot returns the current strength, form and Pythagorean ratio for team.
func (l *Ledger) Snapshot(team string) (Snapshot, error) {
	state, ok := l.states[team]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrTeamNotFound, team)
	}
	return Snapshot{
		Strength:    state.strength,
		Form:        state.form.mean(),
		Pythagorean: Pythagorean(state.runsFor, state.runsAgainst),
	}, nil
}

// Prepare checks match against the ledger and advances the season without
// folding the result in. Snapshots taken after Prepare see the state the
// match is played from, so the opener of a new season reads reset form and
// runs. Preparing the same match again does not reset twice.
//
// A match dated before the last processed match returns ErrOutOfOrder.
// Matches naming a team outside the roster, carrying a negative score, or
// pitting a team against itself return an Update carrying a SkipWarning and
// change nothing, so they never trigger a season reset.
func (l *Ledger) Prepare(match models.MatchRecord) (Update, error) {
	if l.applied > 0 && match.Date.Before(l.lastProcessed) {
		return Update{}, fmt.Errorf("%w: match %s on %s, last processed %s",
			ErrOutOfOrder, match.ID, match.Date.Format(time.DateOnly), l.lastProcessed.Format(time.DateOnly))
	}

	if warning := l.validate(match); warning != nil {
		l.log.LogMatchSkipped(warning.MatchID, string(warning.Reason), warning.Detail)
		metrics.RecordMatchSkipped(string(warning.Reason))
		return Update{Warning: warning}, nil
	}

	var update Update
	if crossesSeason(l.seasonMark, match.Date) {
		l.resetSeason()
		update.SeasonReset = true
		l.log.LogSeasonReset(l.seasonMark, match.Date, len(l.teams))
		metrics.RecordSeasonReset()
	}
	l.seasonMark = match.Date
	return update, nil
}

// Apply folds one match result into the ledger, running Prepare first.
// Skipped matches come back with a SkipWarning and leave every team and the
// last processed date untouched. Ties are applied as a home loss.
func (l *Ledger) Apply(match models.MatchRecord) (Update, error) {
	update, err := l.Prepare(match)
	if err != nil || update.Warning != nil {
		return update, err
	}

	home := l.states[match.HomeTeam]
	away := l.states[match.AwayTeam]

	expected := ExpectedScore(home.strength, away.strength)
	actual := 0
	if match.HomeWon() {
		actual = 1
	}
	delta := l.kFactor * (float64(actual) - expected)
	home.strength += delta
	away.strength -= delta

	home.runsFor += match.HomeScore
	home.runsAgainst += match.AwayScore
	away.runsFor += match.AwayScore
	away.runsAgainst += match.HomeScore

	home.form.push(actual)
	away.form.push(1 - actual)

	l.lastProcessed = match.Date
	l.applied++

	update.Applied = true
	update.ExpectedHome = expected
	update.HomeDelta = delta
	update.AwayDelta = -delta

	l.log.LogMatchApplied(match.ID, match.HomeTeam, match.AwayTeam, delta, home.strength, away.strength)
	metrics.RecordMatchApplied()

	return update, nil
}

func (l *Ledger) validate(match models.MatchRecord) *SkipWarning {
	for _, team := range []string{match.HomeTeam, match.AwayTeam} {
		if _, ok := l.states[team]; !ok {
			return &SkipWarning{MatchID: match.ID, Reason: SkipUnknownTeam, Detail: team}
		}
	}
	if match.HomeTeam == match.AwayTeam {
		return &SkipWarning{MatchID: match.ID, Reason: SkipSelfMatch, Detail: match.HomeTeam}
	}
	if match.HomeScore < 0 || match.AwayScore < 0 {
		return &SkipWarning{
			MatchID: match.ID,
			Reason:  SkipNegativeScore,
			Detail:  fmt.Sprintf("%d-%d", match.HomeScore, match.AwayScore),
		}
	}
	return nil
}

// Ratings returns the current strength of every team.
func (l *Ledger) Ratings() map[string]float64 {
	out := make(map[string]float64, len(l.states))
	for team, state := range l.states {
		out[team] = state.strength
	}
	return out
}

// Teams returns the roster in the order it was supplied.
func (l *Ledger) Teams() []string {
	out := make([]string, len(l.teams))
	copy(out, l.teams)
	return out
}

// Has reports whether team is on the roster.
func (l *Ledger) Has(team string) bool {
	_, ok := l.states[team]
	return ok
}

// State returns a copy of the full rating state for team.
func (l *Ledger) State(team string) (models.TeamRatingState, error) {
	state, ok := l.states[team]
	if !ok {
		return models.TeamRatingState{}, fmt.Errorf("%w: %s", ErrTeamNotFound, team)
	}
	return models.TeamRatingState{
		Team:          team,
		Strength:      state.strength,
		RecentResults: state.form.values(),
		RunsFor:       state.runsFor,
		RunsAgainst:   state.runsAgainst,
	}, nil
}

// LastProcessed returns the date of the most recently applied match and
// whether any match has been applied.
func (l *Ledger) LastProcessed() (time.Time, bool) {
	return l.lastProcessed, l.applied > 0
}

// Applied returns the number of matches folded into the ledger.
func (l *Ledger) Applied() int {
	return l.applied
}
