// Package backtest replays historical feature vectors through an outcome
// predictor and scores its accuracy against the recorded results.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/metrics"
	"github.com/yourusername/pennant-path/internal/models"
	"github.com/yourusername/pennant-path/internal/predictor"
)

// ErrNoVectors indicates there was nothing to replay.
var ErrNoVectors = errors.New("no feature vectors to replay")

const replaySource = "replay"

// Result is the outcome of a replay run
type Result struct {
	RunID       uuid.UUID `json:"run_id"`
	Metrics     Metrics   `json:"metrics"`
	Rows        []Row     `json:"rows"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Replayer scores a predictor against already-decided matches.
type Replayer struct {
	cfg       Config
	predictor predictor.Predictor
	log       *logger.PredictorLogger
}

// NewReplayer creates a replayer. A zero RecentWindow falls back to the default.
func NewReplayer(cfg Config, p predictor.Predictor, log logrus.FieldLogger) *Replayer {
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = DefaultRecentWindow
	}
	return &Replayer{
		cfg:       cfg,
		predictor: p,
		log:       logger.NewPredictorLogger(log),
	}
}

// Replay asks the predictor about every vector in order. Any predictor
// failure aborts the run with an error wrapping
// predictor.ErrPredictionUnavailable.
func (r *Replayer) Replay(ctx context.Context, vectors []models.FeatureVector) (*Result, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}

	rows := make([]Row, 0, len(vectors))
	for _, vector := range vectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		prediction, err := r.predictor.Predict(ctx, vector)
		if err == nil {
			err = prediction.Validate()
		}
		elapsed := time.Since(start)
		if err != nil {
			metrics.RecordPredictorRequest(replaySource, "failure", elapsed.Seconds())
			r.log.LogPredictionError(replaySource, vector.MatchID, err.Error())
			if !errors.Is(err, predictor.ErrPredictionUnavailable) {
				err = fmt.Errorf("%w: %w", predictor.ErrPredictionUnavailable, err)
			}
			return nil, fmt.Errorf("replay match %s: %w", vector.MatchID, err)
		}
		metrics.RecordPredictorRequest(replaySource, "success", elapsed.Seconds())
		r.log.LogPredictionRequest(replaySource, vector.MatchID, prediction.Probability, false, float64(elapsed.Milliseconds()))

		rows = append(rows, Row{
			MatchID:     vector.MatchID,
			Date:        vector.Date,
			FocusTeam:   vector.FocusTeam,
			Opponent:    vector.Opponent,
			FocusIsHome: vector.FocusIsHome,
			Probability: prediction.Probability,
			Predicted:   prediction.Label,
			Actual:      vector.Label,
			Correct:     prediction.Label == vector.Label,
		})
	}

	result := &Result{
		RunID:       uuid.New(),
		Metrics:     CalculateMetrics(rows, r.cfg.RecentWindow),
		Rows:        rows,
		StartDate:   rows[0].Date,
		EndDate:     rows[len(rows)-1].Date,
		GeneratedAt: time.Now().UTC(),
	}

	metrics.UpdateBacktestAccuracy(result.Metrics.Accuracy)
	r.log.LogReplayComplete(result.Metrics.Total, result.Metrics.Correct,
		result.Metrics.Accuracy, result.Metrics.BrierScore, result.Metrics.LogLoss)

	return result, nil
}
