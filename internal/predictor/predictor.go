package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/yourusername/pennant-path/internal/models"
)

// Prediction is a classifier verdict for the focus team of a feature vector.
type Prediction struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

// Predictor scores a feature vector. Implementations must return an error
// wrapping ErrPredictionUnavailable rather than guess a probability.
type Predictor interface {
	Predict(ctx context.Context, features models.FeatureVector) (Prediction, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, features models.FeatureVector) (Prediction, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, features models.FeatureVector) (Prediction, error) {
	return f(ctx, features)
}

// Validate checks that p is a usable prediction.
func (p Prediction) Validate() error {
	if math.IsNaN(p.Probability) || p.Probability < 0 || p.Probability > 1 {
		return fmt.Errorf("%w: %w: probability %v outside [0,1]", ErrPredictionUnavailable, ErrInvalidPrediction, p.Probability)
	}
	if p.Label != 0 && p.Label != 1 {
		return fmt.Errorf("%w: %w: label %d", ErrPredictionUnavailable, ErrInvalidPrediction, p.Label)
	}
	return nil
}

// unavailable wraps err so callers can match ErrPredictionUnavailable.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPredictionUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPredictionUnavailable, err)
}
