package ordinals

import (
	"iter"
)

// TermSource is the per-segment collaborator contract: a window onto one
// segment's immutable, sorted, deduplicated term dictionary and the
// per-document ordinals into it. Implementations are owned by the
// enclosing engine's column store and must outlive every View built on
// top of them; the fielddata package ships an in-memory reference
// implementation.
type TermSource interface {
	// UniqueValueCount returns the number of distinct terms in the
	// segment dictionary. Local ordinals are dense in
	// [0, UniqueValueCount()).
	UniqueValueCount() uint64

	// Terms enumerates the dictionary in strictly increasing
	// lexicographic byte order, one term per distinct value. The
	// sequence is finite and restartable by re-invoking. Yielded slices
	// may share an internal buffer and are valid only until the next
	// step. A non-nil error terminates the sequence and is fatal to any
	// build consuming it.
	Terms() iter.Seq2[[]byte, error]

	// DocOrdinals yields doc's local ordinals in the original
	// multi-value order. The sequence is finite, single-pass and
	// restartable by re-invoking. A document without values yields
	// nothing.
	DocOrdinals(doc uint32) iter.Seq[uint64]

	// ValueForOrdinal returns the term bytes for a local ordinal. The
	// returned slice may share an internal buffer and is valid only
	// until the next call on the same source.
	ValueForOrdinal(ord uint64) ([]byte, error)
}
