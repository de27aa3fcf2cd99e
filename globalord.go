package globalord

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/globalord/cache"
	"github.com/hupe1980/globalord/model"
	"github.com/hupe1980/globalord/ordinals"
	"github.com/hupe1980/globalord/resource"
)

// SnapshotID re-exports the reader-snapshot identity token.
type SnapshotID = model.SnapshotID

// Snapshot is a reader snapshot: an identity token plus the ordered
// segment sources visible under it. The order of Segments defines the
// snapshot-relative segment indexes and must be stable for the
// snapshot's lifetime.
type Snapshot struct {
	ID       model.SnapshotID
	Segments []ordinals.TermSource
}

// Provider builds, caches and serves global-ordinal views, one per
// reader snapshot. Views are built on first access, with at most one
// merge in flight per snapshot: concurrent requesters fan in to the
// single build and share its result. A failed build is never cached; the
// next requester retries from scratch.
//
// The cached output is purely a cost amortization: it is a function of
// the snapshot's segment set and can always be rebuilt.
type Provider struct {
	builder *ordinals.MergeBuilder
	cache   cache.Cache
	rc      *resource.Controller
	logger  *Logger
	metrics MetricsCollector
	group   singleflight.Group
}

// New creates a Provider.
func New(opts ...Option) *Provider {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Provider{
		builder: ordinals.NewMergeBuilder(o.prescanWorkers),
		rc:      o.controller,
		logger:  o.logger,
		metrics: o.metrics,
	}
	if o.cache != nil {
		p.cache = o.cache
	} else {
		p.cache = cache.NewLRU(o.cacheCapacity, p.onEvict)
	}
	return p
}

// Load returns the global-ordinals view for the snapshot, building it if
// no view is cached. Safe for concurrent use; N simultaneous loads of one
// uncached snapshot run exactly one merge.
func (p *Provider) Load(ctx context.Context, snap Snapshot) (*ordinals.View, error) {
	if v, ok := p.cache.Get(snap.ID); ok {
		p.metrics.RecordCacheHit()
		return v, nil
	}
	p.metrics.RecordCacheMiss()

	v, err, _ := p.group.Do(string(snap.ID), func() (any, error) {
		// A finished flight may have populated the cache after our miss.
		if v, ok := p.cache.Get(snap.ID); ok {
			return v, nil
		}
		return p.build(ctx, snap)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ordinals.View), nil
}

// Invalidate drops the snapshot's cached view. The segment lifecycle
// manager calls this whenever the snapshot's segment set changes.
func (p *Provider) Invalidate(id model.SnapshotID) {
	p.cache.Invalidate(id)
}

// InvalidateAll drops every cached view.
func (p *Provider) InvalidateAll() {
	p.cache.Clear()
}

func (p *Provider) build(ctx context.Context, snap Snapshot) (*ordinals.View, error) {
	if err := p.rc.AcquireBuild(ctx); err != nil {
		return nil, fmt.Errorf("acquiring build slot: %w", err)
	}
	defer p.rc.ReleaseBuild()

	start := time.Now()
	res, err := p.builder.Build(ctx, snap.Segments)
	if err != nil {
		p.metrics.RecordBuild(len(snap.Segments), 0, 0, time.Since(start), err)
		p.logger.LogBuild(ctx, snap.ID, len(snap.Segments), 0, 0, time.Since(start), err)
		return nil, err
	}

	if err := p.rc.TryAcquireMemory(res.MemorySize); err != nil {
		err = fmt.Errorf("global ordinals for %s (%d bytes): %w", snap.ID, res.MemorySize, err)
		p.metrics.RecordBuild(len(snap.Segments), 0, 0, time.Since(start), err)
		p.logger.LogBuild(ctx, snap.ID, len(snap.Segments), 0, 0, time.Since(start), err)
		return nil, err
	}

	view := ordinals.NewView(snap.Segments, res)
	p.cache.Put(snap.ID, view)

	took := time.Since(start)
	p.metrics.RecordBuild(len(snap.Segments), view.UniqueValueCount(), res.MemorySize, took, nil)
	p.logger.LogBuild(ctx, snap.ID, len(snap.Segments), view.UniqueValueCount(), res.MemorySize, took, nil)
	return view, nil
}

// onEvict releases the memory reservation of views leaving the default
// cache, whether by capacity pressure or invalidation.
func (p *Provider) onEvict(id model.SnapshotID, v *ordinals.View) {
	p.rc.ReleaseMemory(v.MemorySize())
	p.metrics.RecordEviction(v.MemorySize())
	p.logger.LogEviction(id, v.MemorySize())
}
