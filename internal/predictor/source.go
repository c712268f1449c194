package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/pennant-path/internal/metrics"
	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/rating"
)

// SnapshotReader is the read side of a rating ledger.
type SnapshotReader interface {
	Snapshot(team string) (rating.Snapshot, error)
}

// EloSource answers pairwise probabilities from ledger strengths alone.
type EloSource struct {
	ledger SnapshotReader
}

// NewEloSource creates a closed-form source over ledger.
func NewEloSource(ledger SnapshotReader) *EloSource {
	return &EloSource{ledger: ledger}
}

// WinProbability returns the logistic expectation that team beats opponent.
func (s *EloSource) WinProbability(ctx context.Context, team, opponent string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a, err := s.ledger.Snapshot(team)
	if err != nil {
		return 0, err
	}
	b, err := s.ledger.Snapshot(opponent)
	if err != nil {
		return 0, err
	}
	return rating.ExpectedScore(a.Strength, b.Strength), nil
}

// ModelSource asks a Predictor for pairwise probabilities, building the
// feature vector from each team's current ledger snapshot.
type ModelSource struct {
	ledger    SnapshotReader
	predictor Predictor
}

// NewModelSource creates a classifier-backed source.
func NewModelSource(ledger SnapshotReader, p Predictor) *ModelSource {
	return &ModelSource{ledger: ledger, predictor: p}
}

// WinProbability scores a hypothetical game with team at home.
func (s *ModelSource) WinProbability(ctx context.Context, team, opponent string) (float64, error) {
	vector, err := PairVector(s.ledger, team, opponent)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	prediction, err := s.predictor.Predict(ctx, vector)
	if err != nil {
		metrics.RecordPredictorRequest("pairwise", "failure", time.Since(start).Seconds())
		return 0, unavailable(err)
	}
	if err := prediction.Validate(); err != nil {
		metrics.RecordPredictorRequest("pairwise", "failure", time.Since(start).Seconds())
		return 0, err
	}
	metrics.RecordPredictorRequest("pairwise", "success", time.Since(start).Seconds())
	return prediction.Probability, nil
}

// PairVector builds a feature vector for a hypothetical game between team
// (at home) and opponent from their current snapshots.
func PairVector(ledger SnapshotReader, team, opponent string) (models.FeatureVector, error) {
	a, err := ledger.Snapshot(team)
	if err != nil {
		return models.FeatureVector{}, err
	}
	b, err := ledger.Snapshot(opponent)
	if err != nil {
		return models.FeatureVector{}, err
	}
	return models.FeatureVector{
		MatchID:             fmt.Sprintf("%s-vs-%s", team, opponent),
		HomeTeam:            team,
		AwayTeam:            opponent,
		FocusTeam:           team,
		Opponent:            opponent,
		FocusIsHome:         true,
		FocusElo:            a.Strength,
		OpponentElo:         b.Strength,
		FocusForm:           a.Form,
		OpponentForm:        b.Form,
		FocusPythagorean:    a.Pythagorean,
		OpponentPythagorean: b.Pythagorean,
	}, nil
}

// NewEloPredictor returns a Predictor that scores a vector from its two
// pre-match strengths. It never fails, so it serves as the model-free
// baseline for accuracy replays.
func NewEloPredictor() Predictor {
	return PredictorFunc(func(ctx context.Context, features models.FeatureVector) (Prediction, error) {
		if err := ctx.Err(); err != nil {
			return Prediction{}, unavailable(err)
		}
		p := rating.ExpectedScore(features.FocusElo, features.OpponentElo)
		label := 0
		if p >= 0.5 {
			label = 1
		}
		return Prediction{Label: label, Probability: p}, nil
	})
}
