// Package metrics provides the Prometheus registry for the cashout simulator.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cashout_simulator"

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of betslip evaluations by status",
	}, []string{"status"})
	RejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejected_betslips_total",
		Help:      "Total number of betslips rejected before or during evaluation",
	}, []string{"reason"})
	CacheErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Total number of evaluation cache failures",
	}, []string{"operation"})
	BetslipsConsumedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "betslips_consumed_total",
		Help:      "Total number of betslips read from Kafka",
	}, []string{"source"})
)

// Histogram metrics
var (
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of betslip evaluations in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
	ScenarioCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scenarios_per_evaluation",
		Help:      "Number of scenario rows produced per evaluation",
		// 3^U and 4^U
		Buckets: []float64{1, 3, 4, 9, 16, 27, 64, 81, 256, 729, 4096, 59049, 1048576},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(RejectedTotal)
		registry.MustRegister(CacheErrorsTotal)
		registry.MustRegister(BetslipsConsumedTotal)

		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(ScenarioCount)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation records a finished evaluation.
func RecordEvaluation(status string, scenarios int, durationSeconds float64) {
	EvaluationsTotal.WithLabelValues(status).Inc()
	ScenarioCount.Observe(float64(scenarios))
	EvaluationDuration.Observe(durationSeconds)
}

// RecordRejected records a betslip that produced no evaluation.
func RecordRejected(reason string) {
	RejectedTotal.WithLabelValues(reason).Inc()
}

// RecordCacheError records a failed cache operation.
func RecordCacheError(operation string) {
	CacheErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordBetslipsConsumed records betslips read from the ingestion topic.
func RecordBetslipsConsumed(source string, count int) {
	if source == "" {
		source = "unknown"
	}
	BetslipsConsumedTotal.WithLabelValues(source).Add(float64(count))
}
