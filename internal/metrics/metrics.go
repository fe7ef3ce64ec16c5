// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Recommendation requests by engine and outcome.",
	}, []string{"engine", "status"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_cache_hits_total",
		Help: "Recommendation cache lookups by result.",
	}, []string{"result"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_request_duration_seconds",
		Help:    "End-to-end recommendation request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	SimilarityBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "similarity_matrix_build_duration_seconds",
		Help:    "Time spent building the pairwise user similarity matrix.",
		Buckets: prometheus.DefBuckets,
	})

	EngineInitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_init_duration_seconds",
		Help:    "Recommendation engine initialization time.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"engine"})
)
