package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/pennant-path/internal/config"
	"github.com/yourusername/pennant-path/internal/logger"
	"github.com/yourusername/pennant-path/internal/metrics"
	"github.com/yourusername/pennant-path/internal/models"
)

const sourceHTTP = "model"

// predictRequest is the JSON body posted to the classifier endpoint.
type predictRequest struct {
	MatchID  string             `json:"matchId,omitempty"`
	Columns  []string           `json:"columns"`
	Values   []float64          `json:"values"`
	Features map[string]float64 `json:"features"`
}

// HTTPPredictor calls a remote classifier over HTTP with retries and a
// client-side rate limit.
type HTTPPredictor struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	url     string
	apiKey  string
	log     *logger.PredictorLogger
}

// NewHTTPPredictor creates a predictor for the configured endpoint.
func NewHTTPPredictor(cfg *config.PredictorConfig, log logrus.FieldLogger) (*HTTPPredictor, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.CheckRetry = retryPolicy()
	retryClient.Logger = nil

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &HTTPPredictor{
		client:  retryClient,
		limiter: rate.NewLimiter(limit, 1),
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		log:     logger.NewPredictorLogger(log),
	}, nil
}

// Predict posts the feature vector and decodes {"label", "probability"}.
func (p *HTTPPredictor) Predict(ctx context.Context, features models.FeatureVector) (Prediction, error) {
	start := time.Now()

	prediction, err := p.predict(ctx, features)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordPredictorRequest(sourceHTTP, "failure", elapsed.Seconds())
		p.log.LogPredictionError(sourceHTTP, features.MatchID, err.Error())
		return Prediction{}, unavailable(err)
	}

	metrics.RecordPredictorRequest(sourceHTTP, "success", elapsed.Seconds())
	p.log.LogPredictionRequest(sourceHTTP, features.MatchID, prediction.Probability, false, float64(elapsed.Milliseconds()))
	return prediction, nil
}

func (p *HTTPPredictor) predict(ctx context.Context, features models.FeatureVector) (Prediction, error) {
	body, err := json.Marshal(predictRequest{
		MatchID:  features.MatchID,
		Columns:  models.Columns,
		Values:   features.Values(),
		Features: features.Map(),
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return Prediction{}, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Prediction{}, fmt.Errorf("predictor returned status %d: %s", resp.StatusCode, string(msg))
	}

	var raw struct {
		Label       *int     `json:"label"`
		Probability *float64 `json:"probability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
	}
	if raw.Probability == nil {
		return Prediction{}, fmt.Errorf("%w: missing probability", ErrInvalidPrediction)
	}

	prediction := Prediction{Probability: *raw.Probability}
	if raw.Label != nil {
		prediction.Label = *raw.Label
	} else if prediction.Probability >= 0.5 {
		prediction.Label = 1
	}
	if err := prediction.Validate(); err != nil {
		return Prediction{}, err
	}
	return prediction, nil
}

// Close releases idle connections.
func (p *HTTPPredictor) Close() error {
	p.client.HTTPClient.CloseIdleConnections()
	return nil
}

// retryPolicy retries network errors, 429 and 5xx gateway responses.
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}
