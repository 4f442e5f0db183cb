// Package metrics provides Prometheus metrics collection for the price
// predictor. It defines the prediction, model and HTTP metrics exposed on
// the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "energy_price"

// Metrics holds all Prometheus metrics for the predictor.
type Metrics struct {
	// Prediction metrics
	PredictionsTotal   prometheus.Counter   // Total number of successful predictions
	PredictionFailures prometheus.Counter   // Total number of failed predictions
	PredictionLatency  prometheus.Histogram // Scaler+model latency in seconds
	PredictedPrice     prometheus.Histogram // Distribution of predicted $/kWh
	ModelAge           prometheus.Gauge     // Age of the loaded model in seconds

	// Usage metrics
	RoleSelections *prometheus.CounterVec // Predictions by user role
	HTTPRequests   *prometheus.CounterVec // Requests by route and status code
	FeedClients    prometheus.Gauge       // Connected live-feed websocket clients
	HistoryWrites  *prometheus.CounterVec // History store writes by result
}

// New creates and registers all Prometheus metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		PredictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of successful price predictions",
		}),
		PredictionFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_failures_total",
			Help:      "Total number of failed price predictions",
		}),
		PredictionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_latency_seconds",
			Help:      "Scaler transform plus model predict latency in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		PredictedPrice: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "predicted_price_dollars_per_kwh",
			Help:      "Distribution of predicted purchasing prices",
			Buckets:   prometheus.LinearBuckets(0, 0.025, 13),
		}),
		ModelAge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_age_seconds",
			Help:      "Age of the loaded model in seconds",
		}),
		RoleSelections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "role_selections_total",
			Help:      "Predictions requested per user role",
		}, []string{"role"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		FeedClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_clients",
			Help:      "Connected live prediction feed clients",
		}),
		HistoryWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_writes_total",
			Help:      "Prediction history writes by result",
		}, []string{"result"}),
	}
}
