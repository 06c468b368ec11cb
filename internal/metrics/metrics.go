// Package metrics provides the Prometheus registry for prediction runs.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "epl_predictor"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of fixture predictions by estimation method and status",
	}, []string{"method", "status"})
	ResultsLoadedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_loaded_total",
		Help:      "Total number of historical match results loaded by source",
	}, []string{"source"})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Time taken to run the estimation pipeline for one fixture",
		Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method"})
)

// Gauge metrics
var (
	ExpectedGoals = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "expected_goals",
		Help:      "Expected goals parameter of the latest prediction by team and venue",
	}, []string{"team", "venue"})
	OutcomeProbability = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "outcome_probability",
		Help:      "Latest outcome probability by fixture and outcome",
	}, []string{"fixture", "outcome"})
)

// InitRegistry initializes the custom registry and registers all metrics.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(ResultsLoadedTotal)
		registry.MustRegister(PredictionDuration)
		registry.MustRegister(ExpectedGoals)
		registry.MustRegister(OutcomeProbability)
	})

	return registry
}

// GetRegistry returns the initialized registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// RecordPrediction records one pipeline run.
// status should be one of: "success", "insufficient_history", "invalid_parameter", "failure"
func RecordPrediction(method, status string, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(method, status).Inc()
	PredictionDuration.WithLabelValues(method).Observe(durationSeconds)
}

// RecordResultsLoaded records a load of the results feed.
func RecordResultsLoaded(source string, rows int) {
	ResultsLoadedTotal.WithLabelValues(source).Add(float64(rows))
}

// SetExpectedGoals updates the expected goals gauge for a team.
func SetExpectedGoals(team, venue string, lambda float64) {
	ExpectedGoals.WithLabelValues(team, venue).Set(lambda)
}

// SetOutcomeProbabilities updates the outcome gauges for a fixture.
func SetOutcomeProbabilities(fixture string, homeWin, draw, awayWin float64) {
	OutcomeProbability.WithLabelValues(fixture, "home_win").Set(homeWin)
	OutcomeProbability.WithLabelValues(fixture, "draw").Set(draw)
	OutcomeProbability.WithLabelValues(fixture, "away_win").Set(awayWin)
}

// WriteTextfile writes the registry in text exposition format for the
// node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, GetRegistry())
}
