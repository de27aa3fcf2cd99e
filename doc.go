// Package globalord unifies the term dictionaries of immutable index
// segments into one densely numbered global ordinal space per reader
// snapshot, so that sort, aggregation and grouping layers can compare
// field values by integer instead of by byte sequence across segment
// boundaries.
//
// # Model
//
// Each segment exposes its sorted, deduplicated term dictionary through
// an ordinals.TermSource. A merge over all sources of a snapshot assigns
// every distinct value a global ordinal in lexicographic order and
// produces two compact artifacts: a per-segment local→global ordinal map
// (omitted when the segment already matches global order, e.g. the
// single-segment case) and a shared attribution table resolving any
// global ordinal back to the segment that first contributed its value.
//
// # Quick Start
//
//	w := fielddata.NewWriter(1, fielddata.AnalysisKeyword)
//	w.Add(0, "apple")
//	w.Add(1, "cherry")
//	seg := w.Seal()
//
//	p := globalord.New(
//	    globalord.WithCacheCapacity(64 << 20),
//	)
//	view, err := p.Load(ctx, globalord.Snapshot{
//	    ID:       "reader-7",
//	    Segments: []ordinals.TermSource{seg},
//	})
//	if err != nil {
//	    return err
//	}
//	for ord := range view.Segment(0).GlobalOrdinals(0) {
//	    value, _ := view.ValueForGlobalOrdinal(ord)
//	    ...
//	}
//
// Views are immutable, safe for unbounded concurrent reads, and cached
// per snapshot identity: at most one merge runs per snapshot, and any
// change to the segment set invalidates the whole view (there are no
// incremental updates). Global ordinals are only meaningful within the
// snapshot they were built for.
package globalord
