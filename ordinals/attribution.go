package ordinals

// AttributionTable records, for every global ordinal g, which segment
// first contributed its value and the offset recovering that segment's
// local ordinal. Both columns are indexed directly by g and are
// non-decreasing in g. The table is built once per snapshot, immutable,
// and shared by reference across all per-segment handles of one View.
type AttributionTable struct {
	firstSegment packedUints // snapshot-relative segment index
	firstDelta   packedUints // g - delta = local ordinal in that segment
}

// UniqueValueCount returns the number of distinct values across the
// snapshot, i.e. the size of the global ordinal space.
func (t *AttributionTable) UniqueValueCount() uint64 {
	return uint64(t.firstSegment.Len())
}

// SegmentIndex returns the snapshot-relative index of the segment that
// introduced global ordinal g.
func (t *AttributionTable) SegmentIndex(g uint64) int {
	return int(t.firstSegment.Get(g))
}

// LocalOrdinal returns g's local ordinal within its introducing segment.
func (t *AttributionTable) LocalOrdinal(g uint64) uint64 {
	return g - t.firstDelta.Get(g)
}

// MemorySize returns the byte size of both columns.
func (t *AttributionTable) MemorySize() int64 {
	return t.firstSegment.MemorySize() + t.firstDelta.MemorySize()
}
