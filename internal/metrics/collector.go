package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports run totals through a private prometheus registry.
type Collector struct {
	registry     *prometheus.Registry
	samples      prometheus.Counter
	skipped      prometheus.Counter
	labelSamples *prometheus.GaugeVec
	duration     prometheus.Gauge
}

// NewCollector registers the pairset metrics on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pairset_samples_total",
			Help: "Samples added to the collection",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pairset_samples_skipped_total",
			Help: "Samples dropped because the payload could not be decoded",
		}),
		labelSamples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pairset_label_samples",
			Help: "Samples per label in the last tally",
		}, []string{"label"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pairset_scan_duration_seconds",
			Help: "Wall time of the last scan",
		}),
	}
	c.registry.MustRegister(c.samples, c.skipped, c.labelSamples, c.duration)
	return c
}

// Registry exposes the underlying registry as a Gatherer.
func (c *Collector) Registry() prometheus.Gatherer {
	return c.registry
}

// RecordBatch counts kept and skipped samples.
func (c *Collector) RecordBatch(kept, skipped int) {
	c.samples.Add(float64(kept))
	c.skipped.Add(float64(skipped))
}

// RecordCounts replaces the per-label gauges with counts.
func (c *Collector) RecordCounts(counts map[int]int) {
	c.labelSamples.Reset()
	for label, n := range counts {
		c.labelSamples.WithLabelValues(strconv.Itoa(label)).Set(float64(n))
	}
}

// RecordDuration sets the scan wall time.
func (c *Collector) RecordDuration(d time.Duration) {
	c.duration.Set(d.Seconds())
}

// WriteTextfile writes the registry in the node exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
