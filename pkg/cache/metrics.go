package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend (memory, redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f1_cache_hits_total",
			Help: "Total number of query cache hits",
		},
		[]string{"backend"}, // "memory", "redis"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f1_cache_misses_total",
			Help: "Total number of query cache misses",
		},
	)

	// CacheEvictions tracks LRU evictions in the memory store
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "f1_cache_evictions_total",
			Help: "Total number of entries evicted from the memory store",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "f1_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set"
	)
)
