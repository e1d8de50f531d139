package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompletionCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propinsight_completion_calls_total",
			Help: "Total number of completion calls by task and outcome",
		},
		[]string{"task", "outcome"},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "propinsight_completion_duration_seconds",
			Help:    "Duration of completion calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"task"},
	)

	CoercionResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propinsight_coercion_results_total",
			Help: "Structured coercion results by task and the stage that produced them",
		},
		[]string{"task", "stage"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "propinsight_active_sessions",
			Help: "Number of live operator sessions",
		},
	)
)
