// Package metrics provides the centralized Prometheus registry for pennant-path.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric exported by the module.
const Namespace = "pennant_path"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Ledger metrics
var (
	MatchesAppliedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "matches_applied_total",
		Help:      "Total number of match results folded into the rating ledger",
	})
	MatchesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "matches_skipped_total",
		Help:      "Total number of match results skipped by the rating ledger, by reason",
	}, []string{"reason"})
	SeasonResetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "season_resets_total",
		Help:      "Total number of season boundaries crossed",
	})
	FeatureVectorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "feature_vectors_total",
		Help:      "Total number of feature vectors emitted",
	})
)

// Simulation metrics
var (
	SeriesSimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "series_simulations_total",
		Help:      "Total number of series simulations by best-of length",
	}, []string{"best_of"})
	SeriesTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "series_trials_total",
		Help:      "Total number of simulated series trials",
	})
	ProjectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "projections_total",
		Help:      "Total number of bracket projections by status",
	}, []string{"status"})
	ProjectionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "projection_duration_seconds",
		Help:      "Duration of bracket projections in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	FocusAdvanceProbability = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "focus_advance_probability",
		Help:      "Cumulative advancement probability of the focus team by stage",
	}, []string{"team", "stage"})
)

// Predictor metrics
var (
	PredictorRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "predictor_requests_total",
		Help:      "Total number of predictor requests by source and status",
	}, []string{"source", "status"})
	PredictorLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "predictor_latency_seconds",
		Help:      "Latency of predictor requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
	ProbabilityCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "probability_cache_hit_ratio",
		Help:      "Hit ratio of the pairwise probability cache",
	})
	BacktestAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "backtest_accuracy",
		Help:      "Accuracy of the most recent prediction replay",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(MatchesAppliedTotal)
		registry.MustRegister(MatchesSkippedTotal)
		registry.MustRegister(SeasonResetsTotal)
		registry.MustRegister(FeatureVectorsTotal)

		registry.MustRegister(SeriesSimulationsTotal)
		registry.MustRegister(SeriesTrialsTotal)
		registry.MustRegister(ProjectionsTotal)
		registry.MustRegister(ProjectionDuration)
		registry.MustRegister(FocusAdvanceProbability)

		registry.MustRegister(PredictorRequestsTotal)
		registry.MustRegister(PredictorLatency)
		registry.MustRegister(ProbabilityCacheHitRatio)
		registry.MustRegister(BacktestAccuracy)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordMatchApplied records a match folded into the ledger.
func RecordMatchApplied() {
	MatchesAppliedTotal.Inc()
}

// RecordMatchSkipped records a skipped match.
// reason is one of: "unknown_team", "negative_score", "self_match"
func RecordMatchSkipped(reason string) {
	MatchesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordSeasonReset records a season boundary.
func RecordSeasonReset() {
	SeasonResetsTotal.Inc()
}

// RecordFeatureVector records an emitted feature vector.
func RecordFeatureVector() {
	FeatureVectorsTotal.Inc()
}

// RecordSeriesSimulation records one series simulation and its trial count.
func RecordSeriesSimulation(bestOf string, trials int) {
	SeriesSimulationsTotal.WithLabelValues(bestOf).Inc()
	SeriesTrialsTotal.Add(float64(trials))
}

// RecordProjection records a finished projection.
func RecordProjection(status string, durationSeconds float64) {
	ProjectionsTotal.WithLabelValues(status).Inc()
	ProjectionDuration.Observe(durationSeconds)
}

// UpdateAdvanceProbability sets the cumulative probability gauge for a stage.
func UpdateAdvanceProbability(team, stage string, probability float64) {
	FocusAdvanceProbability.WithLabelValues(team, stage).Set(probability)
}

// RecordPredictorRequest records a predictor request.
// status should be one of: "success", "failure"
func RecordPredictorRequest(source, status string, durationSeconds float64) {
	PredictorRequestsTotal.WithLabelValues(source, status).Inc()
	PredictorLatency.WithLabelValues(source).Observe(durationSeconds)
}

// UpdateCacheHitRatio updates the probability cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	ProbabilityCacheHitRatio.Set(ratio)
}

// UpdateBacktestAccuracy updates the replay accuracy gauge.
func UpdateBacktestAccuracy(accuracy float64) {
	BacktestAccuracy.Set(accuracy)
}
