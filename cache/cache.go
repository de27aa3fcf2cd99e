// Package cache holds built global-ordinal views keyed by reader-snapshot
// identity. The cache is purely a cost-amortization layer: the core never
// consults it for correctness and can always rebuild, so eviction is
// always safe.
package cache

import (
	"github.com/hupe1980/globalord/model"
	"github.com/hupe1980/globalord/ordinals"
)

// Cache is the snapshot-keyed view store the core requires from its
// environment. Implementations must be safe for concurrent use and hold
// at most one view per snapshot.
type Cache interface {
	// Get returns the cached view for the snapshot, if any.
	Get(id model.SnapshotID) (*ordinals.View, bool)

	// Put stores the view for the snapshot, replacing any previous one.
	Put(id model.SnapshotID, v *ordinals.View)

	// Invalidate drops the snapshot's view. Called by the segment
	// lifecycle manager whenever the snapshot's segment set changes.
	Invalidate(id model.SnapshotID)

	// Clear drops every cached view.
	Clear()
}

// EvictFunc observes evictions and invalidations; views are immutable so
// the hook is for accounting only (releasing reserved memory, metrics).
type EvictFunc func(id model.SnapshotID, v *ordinals.View)
