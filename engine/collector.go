package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus instruments of a run. Collectors are not
// registered anywhere until Register is called.
type Collector struct {
	StageDuration    *prometheus.HistogramVec
	RoutedPairs      prometheus.Counter
	UnreachablePairs prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	Runs             *prometheus.CounterVec
}

// NewCollector creates instruments under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each run stage in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		RoutedPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routed_pairs_total",
			Help:      "Total number of supply→demand pairs routed",
		}),
		UnreachablePairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unreachable_pairs_total",
			Help:      "Total number of routed pairs without a finite path",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_cache_hits_total",
			Help:      "Total number of path cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_cache_misses_total",
			Help:      "Total number of path cache misses",
		}),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of executed runs by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Register adds every instrument to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.StageDuration, c.RoutedPairs, c.UnreachablePairs, c.CacheHits, c.CacheMisses, c.Runs,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}
