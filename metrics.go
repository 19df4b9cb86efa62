package arraypool

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "arraypool"

// Collector exports the Stats of a pool as prometheus metrics.
//
// Register one collector per pool, each under a distinct name.
type Collector struct {
	stats func() Stats

	hits             *prometheus.Desc
	misses           *prometheus.Desc
	oversizedAllocs  *prometheus.Desc
	returned         *prometheus.Desc
	droppedFull      *prometheus.Desc
	droppedOversized *prometheus.Desc
	violations       *prometheus.Desc
	retained         *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for p labelled with pool=name.
func NewCollector[T any](name string, p *Pool[T]) *Collector {
	labels := prometheus.Labels{"pool": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", metric), help, nil, labels)
	}
	return &Collector{
		stats:            p.Stats,
		hits:             desc("hits_total", "Acquires served from a bucket."),
		misses:           desc("misses_total", "In-range acquires that allocated a new array."),
		oversizedAllocs:  desc("oversized_allocs_total", "Acquires above the tracked length."),
		returned:         desc("returned_total", "Releases stored in a bucket."),
		droppedFull:      desc("dropped_full_total", "Releases discarded because the bucket was full."),
		droppedOversized: desc("dropped_oversized_total", "Releases discarded because the array was above the class ceiling."),
		violations:       desc("violations_total", "Releases of arrays that do not belong to the pool."),
		retained:         desc("retained_arrays", "Arrays currently held by the pool."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.oversizedAllocs
	ch <- c.returned
	ch <- c.droppedFull
	ch <- c.droppedOversized
	ch <- c.violations
	ch <- c.retained
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.hits, s.Hits)
	counter(c.misses, s.Misses)
	counter(c.oversizedAllocs, s.OversizedAllocs)
	counter(c.returned, s.Returned)
	counter(c.droppedFull, s.DroppedFull)
	counter(c.droppedOversized, s.DroppedOversized)
	counter(c.violations, s.Violations)
	ch <- prometheus.MustNewConstMetric(c.retained, prometheus.GaugeValue, float64(s.Retained))
}
