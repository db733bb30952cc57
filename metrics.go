package molsel

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// PrometheusCollector adapts it to a Prometheus registry.
type MetricsCollector interface {
	// RecordFind is called after each radius query with the number of hits.
	RecordFind(hits int, duration time.Duration, err error)

	// RecordCheck is called after each existence query.
	RecordCheck(found bool, duration time.Duration, err error)

	// RecordNearest is called after each k-nearest query.
	RecordNearest(k, hits int, duration time.Duration, err error)

	// RecordExtend is called after each selection extension with the
	// selection size before and after.
	RecordExtend(granularity string, before, after int, duration time.Duration)

	// RecordQuery is called after each expression is compiled and evaluated.
	RecordQuery(selected int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFind(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordCheck(bool, time.Duration, error)       {}
func (NoopMetricsCollector) RecordNearest(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordExtend(string, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FindCount         atomic.Int64
	FindErrors        atomic.Int64
	FindHits          atomic.Int64
	FindTotalNanos    atomic.Int64
	CheckCount        atomic.Int64
	CheckErrors       atomic.Int64
	CheckFound        atomic.Int64
	NearestCount      atomic.Int64
	NearestErrors     atomic.Int64
	NearestTotalNanos atomic.Int64
	ExtendCount       atomic.Int64
	ExtendGrowth      atomic.Int64
	QueryCount        atomic.Int64
	QueryErrors       atomic.Int64
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(hits int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FindErrors.Add(1)
		return
	}
	b.FindHits.Add(int64(hits))
}

// RecordCheck implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheck(found bool, duration time.Duration, err error) {
	b.CheckCount.Add(1)
	switch {
	case err != nil:
		b.CheckErrors.Add(1)
	case found:
		b.CheckFound.Add(1)
	}
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(k, hits int, duration time.Duration, err error) {
	b.NearestCount.Add(1)
	b.NearestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.NearestErrors.Add(1)
	}
}

// RecordExtend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtend(granularity string, before, after int, duration time.Duration) {
	b.ExtendCount.Add(1)
	b.ExtendGrowth.Add(int64(after - before))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(selected int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FindCount:       b.FindCount.Load(),
		FindErrors:      b.FindErrors.Load(),
		FindHits:        b.FindHits.Load(),
		FindAvgNanos:    avg(b.FindTotalNanos.Load(), b.FindCount.Load()),
		CheckCount:      b.CheckCount.Load(),
		CheckErrors:     b.CheckErrors.Load(),
		CheckFound:      b.CheckFound.Load(),
		NearestCount:    b.NearestCount.Load(),
		NearestErrors:   b.NearestErrors.Load(),
		NearestAvgNanos: avg(b.NearestTotalNanos.Load(), b.NearestCount.Load()),
		ExtendCount:     b.ExtendCount.Load(),
		ExtendGrowth:    b.ExtendGrowth.Load(),
		QueryCount:      b.QueryCount.Load(),
		QueryErrors:     b.QueryErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FindCount       int64
	FindErrors      int64
	FindHits        int64
	FindAvgNanos    int64
	CheckCount      int64
	CheckErrors     int64
	CheckFound      int64
	NearestCount    int64
	NearestErrors   int64
	NearestAvgNanos int64
	ExtendCount     int64
	ExtendGrowth    int64
	QueryCount      int64
	QueryErrors     int64
}
