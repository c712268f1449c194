// Package predictor defines the outcome predictor contract and the pairwise
// probability sources built on it.
package predictor

import "errors"

var (
	// ErrPredictionUnavailable wraps every failure to obtain a probability
	ErrPredictionUnavailable = errors.New("prediction unavailable")

	// ErrInvalidPrediction indicates the predictor answered with an unusable value
	ErrInvalidPrediction = errors.New("invalid prediction response")

	// ErrNotConfigured indicates no predictor endpoint was configured
	ErrNotConfigured = errors.New("predictor not configured")
)
