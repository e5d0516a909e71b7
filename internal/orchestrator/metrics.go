package orchestrator

import "github.com/prometheus/client_golang/prometheus"

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmw_agent_requests_total",
			Help: "Total number of interpreted requests by outcome.",
		},
		[]string{"outcome", "stage"},
	)

	stageDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bmw_agent_stage_duration_seconds",
			Help:    "Pipeline stage latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, stageDurationSeconds)
}
