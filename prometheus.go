package molsel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements MetricsCollector on Prometheus metrics.
type PrometheusCollector struct {
	opLatency *prometheus.HistogramVec
	hits      *prometheus.HistogramVec
	growth    *prometheus.CounterVec
}

var _ MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the molsel metrics and registers them with
// reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "molsel_operation_latency_seconds",
			Help:    "Latency of spatial queries and selection operations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op", "status"}),
		hits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "molsel_query_hits",
			Help:    "Elements returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"op"}),
		growth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "molsel_extend_added_elements_total",
			Help: "Elements added to selections by extension",
		}, []string{"granularity"}),
	}
	for _, m := range []prometheus.Collector{c.opLatency, c.hits, c.growth} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordFind implements MetricsCollector.
func (c *PrometheusCollector) RecordFind(hits int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("find", status(err)).Observe(d.Seconds())
	if err == nil {
		c.hits.WithLabelValues("find").Observe(float64(hits))
	}
}

// RecordCheck implements MetricsCollector.
func (c *PrometheusCollector) RecordCheck(found bool, d time.Duration, err error) {
	c.opLatency.WithLabelValues("check", status(err)).Observe(d.Seconds())
}

// RecordNearest implements MetricsCollector.
func (c *PrometheusCollector) RecordNearest(k, hits int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("nearest", status(err)).Observe(d.Seconds())
	if err == nil {
		c.hits.WithLabelValues("nearest").Observe(float64(hits))
	}
}

// RecordExtend implements MetricsCollector.
func (c *PrometheusCollector) RecordExtend(granularity string, before, after int, d time.Duration) {
	c.opLatency.WithLabelValues("extend", "success").Observe(d.Seconds())
	c.growth.WithLabelValues(granularity).Add(float64(max(after-before, 0)))
}

// RecordQuery implements MetricsCollector.
func (c *PrometheusCollector) RecordQuery(selected int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("query", status(err)).Observe(d.Seconds())
	if err == nil {
		c.hits.WithLabelValues("query").Observe(float64(selected))
	}
}
