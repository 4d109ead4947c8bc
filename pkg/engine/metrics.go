package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchNodesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "counterbot_search_nodes_total",
		Help: "Nodes visited by the search",
	})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "counterbot_trans_cache_hits_total",
		Help: "Transposition cache hits",
	})

	cacheClearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "counterbot_trans_cache_clears_total",
		Help: "Times the transposition cache was dropped for exceeding its ceiling",
	})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "counterbot_trans_cache_entries",
		Help: "Entries in the transposition cache after the last search",
	})

	completedDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "counterbot_search_completed_depth",
		Help:    "Deepest completed iteration per search",
		Buckets: prometheus.LinearBuckets(1, 1, 12),
	})

	thinkDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "counterbot_think_duration_seconds",
		Help:    "Wall time per search",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
	})
)
