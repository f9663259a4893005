package reco

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_recommendations_generated_total",
			Help: "Count of recommendation records produced by scoring runs.",
		},
	)

	UpsertFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_upsert_failures_total",
			Help: "Count of recommendation upserts that failed and were skipped.",
		},
	)

	EngagementEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_engagement_events_total",
			Help: "Count of engagement feedback events by event_type.",
		},
		[]string{"event_type"},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationsGeneratedTotal,
		UpsertFailuresTotal,
		EngagementEventsTotal,
	)
}
