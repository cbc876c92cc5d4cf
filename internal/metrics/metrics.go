package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for Predictions.
const (
	OK          = "ok"
	Invalid     = "invalid"
	Unavailable = "unavailable"
	Failed      = "failed"
)

var (
	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "houseprice",
			Name:      "predictions_total",
			Help:      "Prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	PredictionSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "houseprice",
			Name:      "prediction_seconds",
			Help:      "Normalize plus inference latency",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
	)

	PredictedPrice = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "houseprice",
			Name:      "predicted_price_thousands",
			Help:      "Distribution of returned estimates",
			Buckets:   prometheus.LinearBuckets(0, 5, 12),
		},
	)

	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "houseprice",
			Name:      "model_loaded",
			Help:      "1 when the price model loaded at startup, 0 otherwise",
		},
	)
)
