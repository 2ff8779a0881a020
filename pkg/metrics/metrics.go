// Package metrics provides the Prometheus registry reference for the
// F1 stats server. All metrics are defined in their respective packages
// (client, pagination, cache) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the server.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Upstream Request Metrics (pkg/client):
//   - f1_upstream_requests_total{resource, status} (Counter): Requests by resource and HTTP status
//   - f1_upstream_request_duration_seconds{resource} (Histogram): Request duration by resource
//   - f1_upstream_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Pagination Metrics (pkg/pagination):
//   - f1_pages_fetched_total{resource} (Counter): Upstream pages fetched per resource
//   - f1_fetch_duration_seconds{resource} (Histogram): Full collection fetch duration
//
// Cache Metrics (pkg/cache):
//   - f1_cache_hits_total{backend} (Counter): Query cache hits by backend (memory, redis)
//   - f1_cache_misses_total (Counter): Query cache misses
//   - f1_cache_evictions_total (Counter): LRU evictions in the memory backend
//   - f1_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(f1_cache_hits_total[5m])) /
//   (sum(rate(f1_cache_hits_total[5m])) + sum(rate(f1_cache_misses_total[5m])))
//
//   # Upstream Error Rate
//   rate(f1_upstream_errors_total[5m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(f1_upstream_request_duration_seconds_bucket[5m]))
//
//   # Pages per Season Query
//   rate(f1_pages_fetched_total[5m])
