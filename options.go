package globalord

import (
	"github.com/hupe1980/globalord/cache"
	"github.com/hupe1980/globalord/resource"
)

type options struct {
	logger         *Logger
	metrics        MetricsCollector
	cache          cache.Cache
	cacheCapacity  int64
	controller     *resource.Controller
	prescanWorkers int
}

// Option configures Provider construction.
type Option func(*options)

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection. If nil is passed,
// NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithCache replaces the default LRU view cache. Callers supplying their
// own cache take over eviction accounting: the provider's resource
// controller only tracks views evicted through its default cache.
func WithCache(c cache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithCacheCapacity bounds the default LRU cache, in bytes of built
// tables. <= 0 disables size-based eviction. Ignored when WithCache is
// also given.
func WithCacheCapacity(bytes int64) Option {
	return func(o *options) {
		o.cacheCapacity = bytes
	}
}

// WithResourceController attaches a shared controller for memory
// accounting and build-concurrency limits, typically engine-wide.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithPrescanWorkers bounds the parallelism of the builder's per-segment
// pre-scan. <= 0 uses GOMAXPROCS.
func WithPrescanWorkers(n int) Option {
	return func(o *options) {
		o.prescanWorkers = n
	}
}
