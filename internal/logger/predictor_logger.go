package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictorLogger provides dedicated logging for outcome predictors.
type PredictorLogger struct {
	*logrus.Entry
}

// NewPredictorLogger creates a new predictor logger.
func NewPredictorLogger(baseLogger logrus.FieldLogger) *PredictorLogger {
	return &PredictorLogger{
		Entry: OrDiscard(baseLogger).WithField("component", "predictor"),
	}
}

// LogPredictionRequest logs a completed prediction request.
func (pl *PredictorLogger) LogPredictionRequest(source, matchID string, probability float64, cacheHit bool, latencyMs float64) {
	pl.WithFields(logrus.Fields{
		"source":      source,
		"match_id":    matchID,
		"probability": probability,
		"cache_hit":   cacheHit,
		"latency_ms":  latencyMs,
	}).Debug("Prediction request completed")
}

// LogPredictionError logs a failed prediction request.
func (pl *PredictorLogger) LogPredictionError(source, matchID, errorReason string) {
	pl.WithFields(logrus.Fields{
		"source":       source,
		"match_id":     matchID,
		"error_reason": errorReason,
	}).Error("Prediction failed")
}

// LogReplayComplete logs the outcome of an accuracy replay.
func (pl *PredictorLogger) LogReplayComplete(total, correct int, accuracy, brier, logLoss float64) {
	pl.WithFields(logrus.Fields{
		"total":    total,
		"correct":  correct,
		"accuracy": accuracy,
		"brier":    brier,
		"log_loss": logLoss,
	}).Info("Prediction replay completed")
}
