// Package metrics provides the central Prometheus metrics registry for
// async-paginate. All metrics are defined in their respective packages
// (paginate, source, cache) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the library.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Fetch Run Metrics (pkg/paginate):
//   - paginate_runs_total{status} (Counter): Fetch runs by outcome (completed, failed)
//   - paginate_pages_fetched_total{status} (Counter): Page fetches by outcome (ok, error)
//   - paginate_page_fetch_duration_seconds (Histogram): Single page fetch duration
//   - paginate_inflight_fetches (Gauge): Page fetches currently in flight
//
// Source Metrics (pkg/source):
//   - paginate_source_requests_total{endpoint, status} (Counter): HTTP page requests by endpoint and status
//   - paginate_source_request_duration_seconds{endpoint} (Histogram): HTTP page request duration
//
// Cache Metrics (pkg/cache):
//   - paginate_cache_hits_total (Counter): Page cache hits
//   - paginate_cache_misses_total (Counter): Page cache misses
//   - paginate_cache_errors_total{operation} (Counter): Cache operation errors (get, set, delete)
//   - paginate_cache_bytes_written_total (Counter): Bytes of page data written to the cache
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(paginate_cache_hits_total[5m]) /
//   (rate(paginate_cache_hits_total[5m]) + rate(paginate_cache_misses_total[5m]))
//
//   # Failed Run Rate
//   rate(paginate_runs_total{status="failed"}[5m])
//
//   # P95 Page Fetch Latency
//   histogram_quantile(0.95, rate(paginate_page_fetch_duration_seconds_bucket[5m]))
//
//   # Request Error Rate by Endpoint
//   sum by (endpoint) (rate(paginate_source_requests_total{status!="200"}[5m]))
