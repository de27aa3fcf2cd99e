package globalord

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each merge build attempt.
	// segments is the snapshot's segment count, terms the resulting
	// global term count, bytes the tables' size, err nil on success.
	RecordBuild(segments int, terms uint64, bytes int64, duration time.Duration, err error)

	// RecordCacheHit is called when a snapshot's view is served from cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a snapshot has no cached view.
	RecordCacheMiss()

	// RecordEviction is called when a view leaves the cache, with the
	// bytes it released.
	RecordEviction(bytes int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, uint64, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit()                                      {}
func (NoopMetricsCollector) RecordCacheMiss()                                     {}
func (NoopMetricsCollector) RecordEviction(int64)                                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
	Evictions       atomic.Int64
	EvictedBytes    atomic.Int64
}

func (m *BasicMetricsCollector) RecordBuild(_ int, _ uint64, _ int64, duration time.Duration, err error) {
	m.BuildCount.Add(1)
	m.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.BuildErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordCacheHit() {
	m.CacheHits.Add(1)
}

func (m *BasicMetricsCollector) RecordCacheMiss() {
	m.CacheMisses.Add(1)
}

func (m *BasicMetricsCollector) RecordEviction(bytes int64) {
	m.Evictions.Add(1)
	m.EvictedBytes.Add(bytes)
}
