package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation generation endpoint
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_generate_latency_seconds",
		Help:    "Latency of recommendation generation",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation runs served
	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_generate_runs_total",
		Help: "Total number of recommendation generation runs",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendTotal,
	)
}
