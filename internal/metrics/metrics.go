// ============================================================================
// attgen Metrics - Prometheus generation metrics
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: count what one generation run produced
//
// Metrics:
//
//   Counters:
//     - attgen_records_generated_total{status}: intervals per status
//     - attgen_month_splits_total: intervals cut at a JST month end
//     - attgen_clamped_records_total: intervals clamped to the window end
//
//   Histogram:
//     - attgen_interval_duration_seconds{status}: interval lengths
//
// Export:
//   attgen exits after one run, so nothing is served over HTTP. The registry
//   is written once in text exposition format (WriteTextfile), suitable for
//   the node_exporter textfile collector.
//
// ============================================================================

package metrics

import (
	"fmt"
	"time"

	"github.com/ChuLiYu/attgen/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
)

// durationBuckets interval lengths in seconds, 10 minutes to 48 hours
var durationBuckets = []float64{
	600, 1800, 3600, 2 * 3600, 4 * 3600, 8 * 3600, 12 * 3600, 24 * 3600, 48 * 3600,
}

// Collector Prometheus metrics for one generation run
type Collector struct {
	registry *prometheus.Registry

	recordsGenerated *prometheus.CounterVec
	monthSplits      prometheus.Counter
	clamped          prometheus.Counter
	intervalDuration *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		recordsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attgen_records_generated_total",
			Help: "Total number of attendance intervals generated",
		}, []string{"status"}),
		monthSplits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attgen_month_splits_total",
			Help: "Total number of intervals cut at a JST month end",
		}),
		clamped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attgen_clamped_records_total",
			Help: "Total number of intervals clamped to the end of the window",
		}),
		intervalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attgen_interval_duration_seconds",
			Help:    "Length of generated intervals in seconds",
			Buckets: durationBuckets,
		}, []string{"status"}),
	}

	c.registry.MustRegister(c.recordsGenerated)
	c.registry.MustRegister(c.monthSplits)
	c.registry.MustRegister(c.clamped)
	c.registry.MustRegister(c.intervalDuration)

	return c
}

// RecordInterval records one generated interval
func (c *Collector) RecordInterval(status types.StatusID, d time.Duration, split bool) {
	label := status.String()
	c.recordsGenerated.WithLabelValues(label).Inc()
	c.intervalDuration.WithLabelValues(label).Observe(d.Seconds())
	if split {
		c.monthSplits.Inc()
	}
}

// RecordClamp records an interval clamped to the window end
func (c *Collector) RecordClamp() {
	c.clamped.Inc()
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all metrics to path in text exposition format
//
// Parameters:
//   - path: destination file, replaced atomically
//
// Returns:
//   - error: gather or write failure
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
