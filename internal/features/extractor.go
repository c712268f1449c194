// Package features turns an ordered match history into pre-match feature
// vectors for a single focus team.
package features

import (
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/metrics"
	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/rating"
)

// SkipHandler receives every match the ledger refused to apply.
type SkipHandler func(match models.MatchRecord, warning rating.SkipWarning)

// Extractor walks matches through a fresh rating ledger and emits one vector
// per applied match involving the focus team.
type Extractor struct {
	teams         []string
	ledgerOptions []rating.Option
	onSkip        SkipHandler
	log           *logger.RatingLogger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLedgerOptions forwards options to every ledger the extractor builds.
func WithLedgerOptions(opts ...rating.Option) Option {
	return func(e *Extractor) {
		e.ledgerOptions = append(e.ledgerOptions, opts...)
	}
}

// WithOnSkip registers a hook for skipped matches.
func WithOnSkip(fn SkipHandler) Option {
	return func(e *Extractor) {
		e.onSkip = fn
	}
}

// WithLogger sets the logger for the extractor and the ledgers it builds.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Extractor) {
		e.log = logger.NewRatingLogger(log)
		e.ledgerOptions = append(e.ledgerOptions, rating.WithLogger(log))
	}
}

// NewExtractor creates an extractor for the given roster.
func NewExtractor(teams []string, opts ...Option) *Extractor {
	e := &Extractor{teams: append([]string(nil), teams...)}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.NewRatingLogger(nil)
	}
	return e
}

// Run returns a lazy sequence of feature vectors for focusTeam. Every range
// over the sequence starts a new ledger from the first match. An ordering
// violation or a focus team outside the roster ends the sequence with an error.
func (e *Extractor) Run(matches []models.MatchRecord, focusTeam string) iter.Seq2[models.FeatureVector, error] {
	return func(yield func(models.FeatureVector, error) bool) {
		stopped := false
		_, err := e.fold(matches, focusTeam, func(v models.FeatureVector) bool {
			if !yield(v, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(models.FeatureVector{}, err)
		}
	}
}

// Collect drains a run into a slice and returns the ledger in its final state.
// An empty focusTeam folds every match without emitting vectors.
func (e *Extractor) Collect(matches []models.MatchRecord, focusTeam string) ([]models.FeatureVector, *rating.Ledger, error) {
	var vectors []models.FeatureVector
	ledger, err := e.fold(matches, focusTeam, func(v models.FeatureVector) bool {
		vectors = append(vectors, v)
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	return vectors, ledger, nil
}

// Fold applies every match and returns the final ledger.
func (e *Extractor) Fold(matches []models.MatchRecord) (*rating.Ledger, error) {
	_, ledger, err := e.Collect(matches, "")
	return ledger, err
}

func (e *Extractor) fold(matches []models.MatchRecord, focusTeam string, emit func(models.FeatureVector) bool) (*rating.Ledger, error) {
	ledger, err := rating.NewLedger(e.teams, e.ledgerOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}
	if focusTeam != "" && !ledger.Has(focusTeam) {
		return nil, fmt.Errorf("focus team %q: %w", focusTeam, rating.ErrTeamNotFound)
	}

	emitted, skipped := 0, 0
	for _, match := range matches {
		prepared, err := ledger.Prepare(match)
		if err != nil {
			return nil, err
		}
		if prepared.Warning != nil {
			skipped++
			if e.onSkip != nil {
				e.onSkip(match, *prepared.Warning)
			}
			continue
		}

		focused := focusTeam != "" && match.Involves(focusTeam)

		var vector models.FeatureVector
		if focused {
			if vector, err = buildVector(ledger, match, focusTeam); err != nil {
				return nil, err
			}
		}

		if _, err := ledger.Apply(match); err != nil {
			return nil, err
		}
		if !focused {
			continue
		}

		emitted++
		metrics.RecordFeatureVector()
		if !emit(vector) {
			return ledger, nil
		}
	}

	e.log.LogFoldComplete(focusTeam, ledger.Applied(), emitted, skipped)
	return ledger, nil
}

// buildVector snapshots both sides of a prepared match before it is applied.
func buildVector(ledger *rating.Ledger, match models.MatchRecord, focusTeam string) (models.FeatureVector, error) {
	opponent := match.Opponent(focusTeam)

	focus, err := ledger.Snapshot(focusTeam)
	if err != nil {
		return models.FeatureVector{}, err
	}
	opp, err := ledger.Snapshot(opponent)
	if err != nil {
		return models.FeatureVector{}, err
	}

	focusIsHome := match.HomeTeam == focusTeam
	won := match.AwayWon()
	if focusIsHome {
		won = match.HomeWon()
	}
	label := 0
	if won {
		label = 1
	}

	return models.FeatureVector{
		MatchID:             match.ID,
		Date:                match.Date,
		HomeTeam:            match.HomeTeam,
		AwayTeam:            match.AwayTeam,
		FocusTeam:           focusTeam,
		Opponent:            opponent,
		FocusIsHome:         focusIsHome,
		FocusElo:            focus.Strength,
		OpponentElo:         opp.Strength,
		RestDiff:            0,
		FocusForm:           focus.Form,
		OpponentForm:        opp.Form,
		FocusPythagorean:    focus.Pythagorean,
		OpponentPythagorean: opp.Pythagorean,
		Label:               label,
	}, nil
}
