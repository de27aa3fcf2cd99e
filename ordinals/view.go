package ordinals

import (
	"fmt"
	"iter"
)

// Term pairs a global ordinal with its value bytes during enumeration.
type Term struct {
	Ordinal uint64
	Value   []byte
}

// DocComparator would order documents by their global-ordinal values with
// missing-value semantics. Constructing one is outside this core's
// contract: see View.SortComparator.
type DocComparator interface {
	Compare(segA int, docA uint32, segB int, docB uint32) int
}

// View is the runtime accessor over one snapshot's global ordinal space.
// It exclusively owns the attribution table and the ordinal maps, and
// holds non-owning references to the segment sources, which the lifecycle
// manager keeps open for as long as the snapshot is reachable.
//
// A View is immutable after construction and safe for unbounded concurrent
// reads without locking.
type View struct {
	table      *AttributionTable
	sources    []TermSource
	handles    []SegmentHandle
	memorySize int64
}

// NewView bundles a build result with the sources it was built from.
// The sources must be the exact slice passed to MergeBuilder.Build, in the
// same order.
func NewView(sources []TermSource, res *BuildResult) *View {
	if len(sources) != len(res.Maps) {
		panic(fmt.Sprintf("ordinals: %d sources for %d ordinal maps", len(sources), len(res.Maps)))
	}
	v := &View{
		table:      res.Table,
		sources:    sources,
		memorySize: res.MemorySize,
	}
	v.handles = make([]SegmentHandle, len(sources))
	for i := range sources {
		v.handles[i] = SegmentHandle{
			view:   v,
			index:  i,
			source: sources[i],
			ordmap: res.Maps[i],
		}
	}
	return v
}

// UniqueValueCount returns the size of the global ordinal space.
func (v *View) UniqueValueCount() uint64 {
	return v.table.UniqueValueCount()
}

// NumSegments returns the number of segments in the snapshot.
func (v *View) NumSegments() int {
	return len(v.handles)
}

// Segment returns the handle for the i-th segment of the snapshot.
func (v *View) Segment(i int) *SegmentHandle {
	return &v.handles[i]
}

// Attribution exposes the shared attribution table for consumers that
// index it directly (e.g. aggregation collectors).
func (v *View) Attribution() *AttributionTable {
	return v.table
}

// MemorySize returns the bytes held by the attribution table and all
// ordinal maps, as reported by the build.
func (v *View) MemorySize() int64 {
	return v.memorySize
}

// ValueForGlobalOrdinal resolves g to its term bytes by routing through
// the source of the segment that first contributed the value. The
// returned slice may share that source's internal buffer and is valid
// only until the next resolution through the same source; use
// AppendValueForGlobalOrdinal to keep it.
func (v *View) ValueForGlobalOrdinal(g uint64) ([]byte, error) {
	if n := v.table.UniqueValueCount(); g >= n {
		return nil, &OrdinalOutOfRangeError{Ordinal: g, Count: n}
	}
	src := v.sources[v.table.SegmentIndex(g)]
	return src.ValueForOrdinal(v.table.LocalOrdinal(g))
}

// AppendValueForGlobalOrdinal appends g's term bytes to dst and returns
// the extended slice, defensively copied out of any shared buffer.
func (v *View) AppendValueForGlobalOrdinal(dst []byte, g uint64) ([]byte, error) {
	b, err := v.ValueForGlobalOrdinal(g)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}

// Terms re-exposes the merged dictionary in global ordinal order. The
// sequence is finite and restartable by re-invoking; yielded values may
// share segment buffers. A non-nil error terminates the sequence.
func (v *View) Terms() iter.Seq2[Term, error] {
	return func(yield func(Term, error) bool) {
		n := v.table.UniqueValueCount()
		for g := uint64(0); g < n; g++ {
			b, err := v.ValueForGlobalOrdinal(g)
			if err != nil {
				yield(Term{Ordinal: g}, err)
				return
			}
			if !yield(Term{Ordinal: g, Value: b}, nil) {
				return
			}
		}
	}
}

// SortComparator always returns ErrUnsupported. Sorting on global
// ordinals needs a value-resolution indirection for missing values that
// this core deliberately does not own; consumers branch on the sentinel
// and lay their own comparator on top.
func (v *View) SortComparator() (DocComparator, error) {
	return nil, ErrUnsupported
}

// SegmentHandle is the per-segment face of a View: it maps one segment's
// documents into the global ordinal space. Handles share the view's
// tables by reference and carry no state of their own.
type SegmentHandle struct {
	view   *View
	index  int
	source TermSource
	ordmap OrdinalMap
}

// Index returns the handle's snapshot-relative segment index.
func (h *SegmentHandle) Index() int {
	return h.index
}

// UniqueValueCount returns the segment-local distinct value count.
func (h *SegmentHandle) UniqueValueCount() uint64 {
	return h.source.UniqueValueCount()
}

// GlobalOrdinals yields doc's global ordinals in the original multi-value
// order. When the segment needs no remapping the source's own sequence is
// returned unchanged.
func (h *SegmentHandle) GlobalOrdinals(doc uint32) iter.Seq[uint64] {
	return h.ordmap.Remap(h.source.DocOrdinals(doc))
}

// ValueForGlobalOrdinal resolves g through the shared attribution table;
// the decode may route through a different segment's source.
func (h *SegmentHandle) ValueForGlobalOrdinal(g uint64) ([]byte, error) {
	return h.view.ValueForGlobalOrdinal(g)
}

// OrdinalMap exposes the segment's local→global map.
func (h *SegmentHandle) OrdinalMap() OrdinalMap {
	return h.ordmap
}

// MemorySize returns the bytes held by this segment's ordinal map. The
// shared attribution table is accounted once, on the View.
func (h *SegmentHandle) MemorySize() int64 {
	return h.ordmap.MemorySize()
}

// Close is a no-op: handle lifetime is governed by the snapshot cache,
// not by individual accessors.
func (h *SegmentHandle) Close() error {
	return nil
}
