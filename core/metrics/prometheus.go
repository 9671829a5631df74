package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup results.
const (
	ResultFound   = "found"
	ResultMissing = "missing"
	ResultCorrupt = "corrupt"
	ResultError   = "error"
	ResultCached  = "cached"
)

// Hydration results.
const (
	HydrationOK          = "ok"
	HydrationNotFound    = "not_found"
	HydrationUnavailable = "unavailable"
	HydrationError       = "error"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	lookupsTotal      *prometheus.CounterVec
	hydrationsTotal   *prometheus.CounterVec
	hydrationDuration prometheus.Histogram
	searchesTotal     prometheus.Counter
	searchResults     prometheus.Histogram
	snapshotSwaps     prometheus.Counter
	snapshotInfo      *prometheus.GaugeVec
}

var (
	globalMetrics *Metrics
	once          sync.Once
)

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	once.Do(func() {
		globalMetrics = &Metrics{
			lookupsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "manifest_store_lookups_total",
					Help: "Total number of definition records looked up, by table and result",
				},
				[]string{"table", "result"},
			),
			hydrationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "manifest_hydrations_total",
					Help: "Total number of item hydrations, by result",
				},
				[]string{"result"},
			),
			hydrationDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "manifest_hydration_duration_seconds",
					Help:    "Item hydration duration in seconds",
					Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
				},
			),
			searchesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "manifest_searches_total",
					Help: "Total number of item name searches",
				},
			),
			searchResults: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "manifest_search_results",
					Help:    "Number of results returned per search",
					Buckets: []float64{0, 1, 5, 10, 20},
				},
			),
			snapshotSwaps: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "manifest_snapshot_swaps_total",
					Help: "Total number of definition snapshots swapped in",
				},
			),
			snapshotInfo: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "manifest_snapshot_info",
					Help: "Currently loaded definition snapshot (1 = loaded)",
				},
				[]string{"version"},
			),
		}
	})
	return globalMetrics
}

// RecordLookup records n lookups against table with the given result.
func (m *Metrics) RecordLookup(table, result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.lookupsTotal.WithLabelValues(table, result).Add(float64(n))
}

// RecordHydration records a finished hydration.
func (m *Metrics) RecordHydration(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.hydrationsTotal.WithLabelValues(result).Inc()
	m.hydrationDuration.Observe(duration.Seconds())
}

// RecordSearch records a search and how many results it produced.
func (m *Metrics) RecordSearch(results int) {
	if m == nil {
		return
	}
	m.searchesTotal.Inc()
	m.searchResults.Observe(float64(results))
}

// RecordSwap records that the snapshot with version replaced the one with previous.
func (m *Metrics) RecordSwap(previous, version string) {
	if m == nil {
		return
	}
	m.snapshotSwaps.Inc()
	if previous != "" {
		m.snapshotInfo.DeleteLabelValues(previous)
	}
	m.snapshotInfo.WithLabelValues(version).Set(1)
}
