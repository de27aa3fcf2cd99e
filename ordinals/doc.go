// Package ordinals implements the global-ordinal core: merging per-segment
// sorted term dictionaries into one densely numbered, snapshot-wide ordinal
// space, and resolving ordinals in both directions at query time.
//
// # Building
//
// MergeBuilder consumes one TermSource per segment and performs a k-way
// merge with duplicate elimination over their sorted term enumerations.
// The output is a BuildResult holding:
//
//   - an AttributionTable: for every global ordinal, the segment that first
//     contributed its value and the offset recovering that segment's local
//     ordinal (two parallel monotonic arrays, O(1) indexed)
//   - one OrdinalMap per segment: a monotonic local→global function,
//     collapsed to an identity marker when no remapping is needed
//
// # Reading
//
// NewView bundles a BuildResult with the segment sources it was built from.
// A View is immutable and safe for unbounded concurrent reads. Per-segment
// handles resolve document values to global ordinals; the view resolves any
// global ordinal back to bytes by routing through the first-contributing
// segment's source.
//
// The package holds no global state and performs no caching; build-once
// semantics and view lifetime are the caller's concern (see the root
// package and the cache package).
package ordinals
