package paginate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for fetch runs.
var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paginate_runs_total",
		Help: "Total fetch runs by outcome",
	}, []string{"status"})

	pagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paginate_pages_fetched_total",
		Help: "Total page fetches by outcome",
	}, []string{"status"})

	pageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "paginate_page_fetch_duration_seconds",
		Help:    "Single page fetch duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	})

	inflightFetches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "paginate_inflight_fetches",
		Help: "Number of page fetches currently in flight",
	})
)
