package ordinals

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is a minimal TermSource over a fixed dictionary.
type stubSource struct {
	terms   []string
	docOrds map[uint32][]uint64
	errAt   int // Terms yields this error after errAt terms
	err     error
}

func newStubSource(terms ...string) *stubSource {
	return &stubSource{terms: terms, errAt: -1}
}

func (s *stubSource) UniqueValueCount() uint64 {
	return uint64(len(s.terms))
}

func (s *stubSource) Terms() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for i, t := range s.terms {
			if s.err != nil && i == s.errAt {
				yield(nil, s.err)
				return
			}
			if !yield([]byte(t), nil) {
				return
			}
		}
	}
}

func (s *stubSource) DocOrdinals(doc uint32) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for _, ord := range s.docOrds[doc] {
			if !yield(ord) {
				return
			}
		}
	}
}

func (s *stubSource) ValueForOrdinal(ord uint64) ([]byte, error) {
	if ord >= uint64(len(s.terms)) {
		return nil, &OrdinalOutOfRangeError{Ordinal: ord, Count: uint64(len(s.terms))}
	}
	return []byte(s.terms[ord]), nil
}

func buildViews(t *testing.T, sources ...TermSource) (*View, *BuildResult) {
	t.Helper()
	res, err := NewMergeBuilder(0).Build(t.Context(), sources)
	require.NoError(t, err)
	return NewView(sources, res), res
}

func TestMergeBuilder_TwoSegments(t *testing.T) {
	segA := newStubSource("apple", "cherry")
	segB := newStubSource("banana", "cherry", "date")

	view, res := buildViews(t, segA, segB)

	// Merged order: apple(0), banana(1), cherry(2), date(3)
	require.Equal(t, uint64(4), view.UniqueValueCount())

	mapA := res.Maps[0]
	assert.Equal(t, uint64(0), mapA.Global(0))
	assert.Equal(t, uint64(2), mapA.Global(1))

	mapB := res.Maps[1]
	assert.Equal(t, uint64(1), mapB.Global(0))
	assert.Equal(t, uint64(2), mapB.Global(1))
	assert.Equal(t, uint64(3), mapB.Global(2))

	// cherry is introduced by segment 0, even though segment 1 holds it too.
	table := res.Table
	assert.Equal(t, []int{0, 1, 0, 1}, []int{
		table.SegmentIndex(0), table.SegmentIndex(1), table.SegmentIndex(2), table.SegmentIndex(3),
	})
	assert.Equal(t, uint64(1), table.LocalOrdinal(2)) // cherry @ segment 0, local 1

	for g, want := range []string{"apple", "banana", "cherry", "date"} {
		b, err := view.ValueForGlobalOrdinal(uint64(g))
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}

func TestMergeBuilder_SingleSegmentIsIdentity(t *testing.T) {
	seg := newStubSource("a", "b", "c")
	seg.docOrds = map[uint32][]uint64{0: {2, 0}}

	view, res := buildViews(t, seg)

	require.Len(t, res.Maps, 1)
	assert.True(t, res.Maps[0].IsIdentity())
	assert.Equal(t, int64(0), res.Maps[0].MemorySize())

	// The attribution table is still produced; callers never special-case
	// the single-segment snapshot.
	require.Equal(t, uint64(3), res.Table.UniqueValueCount())
	for g := uint64(0); g < 3; g++ {
		assert.Equal(t, 0, res.Table.SegmentIndex(g))
		assert.Equal(t, g, res.Table.LocalOrdinal(g))
	}

	// The document's own local-ordinal sequence comes back unchanged.
	got := slices.Collect(view.Segment(0).GlobalOrdinals(0))
	assert.Equal(t, []uint64{2, 0}, got)
}

func TestMergeBuilder_EmptySegments(t *testing.T) {
	empty := newStubSource()
	seg := newStubSource("x", "y")

	_, res := buildViews(t, empty, seg, empty)

	require.Equal(t, uint64(2), res.Table.UniqueValueCount())
	assert.True(t, res.Maps[0].IsIdentity())
	assert.True(t, res.Maps[1].IsIdentity())
	assert.Equal(t, 1, res.Table.SegmentIndex(0))
	assert.Equal(t, uint64(0), res.Table.LocalOrdinal(0))
}

func TestMergeBuilder_NoSegments(t *testing.T) {
	view, res := buildViews(t)

	assert.Equal(t, uint64(0), res.Table.UniqueValueCount())
	assert.Empty(t, res.Maps)
	assert.Equal(t, 0, view.NumSegments())
}

func TestMergeBuilder_DuplicatesAttributeFirstSegment(t *testing.T) {
	// The same dictionary in every segment: first contributor wins all.
	segs := []TermSource{
		newStubSource("k1", "k2"),
		newStubSource("k1", "k2"),
		newStubSource("k1", "k2"),
	}

	_, res := buildViews(t, segs...)

	require.Equal(t, uint64(2), res.Table.UniqueValueCount())
	assert.Equal(t, 0, res.Table.SegmentIndex(0))
	assert.Equal(t, 0, res.Table.SegmentIndex(1))
	for _, m := range res.Maps {
		assert.Equal(t, uint64(0), m.Global(0))
		assert.Equal(t, uint64(1), m.Global(1))
	}
}

func TestMergeBuilder_Deterministic(t *testing.T) {
	sources := []TermSource{
		newStubSource("b", "d", "f"),
		newStubSource("a", "d", "e"),
		newStubSource("c", "d"),
	}

	first, err := NewMergeBuilder(0).Build(t.Context(), sources)
	require.NoError(t, err)
	second, err := NewMergeBuilder(0).Build(t.Context(), sources)
	require.NoError(t, err)

	require.Equal(t, first.Table.UniqueValueCount(), second.Table.UniqueValueCount())
	for g := uint64(0); g < first.Table.UniqueValueCount(); g++ {
		assert.Equal(t, first.Table.SegmentIndex(g), second.Table.SegmentIndex(g))
		assert.Equal(t, first.Table.LocalOrdinal(g), second.Table.LocalOrdinal(g))
	}
	for i := range sources {
		n := sources[i].UniqueValueCount()
		for local := uint64(0); local < n; local++ {
			assert.Equal(t, first.Maps[i].Global(local), second.Maps[i].Global(local))
		}
	}
	assert.Equal(t, first.MemorySize, second.MemorySize)
}

func TestMergeBuilder_Bijection(t *testing.T) {
	sources := []TermSource{
		newStubSource("ant", "bee", "cat", "dog"),
		newStubSource("bee", "cow", "dog", "eel", "fox"),
		newStubSource("ant", "fox", "gnu"),
	}

	view, res := buildViews(t, sources...)

	// Every (segment, local) pair lands on a global ordinal that decodes
	// to the same bytes.
	seen := make(map[uint64]bool)
	for i, src := range sources {
		n := src.UniqueValueCount()
		for local := uint64(0); local < n; local++ {
			g := res.Maps[i].Global(local)
			seen[g] = true

			want, err := src.ValueForOrdinal(local)
			require.NoError(t, err)
			got, err := view.ValueForGlobalOrdinal(g)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}

	// Dense: no gaps, no ordinals beyond the distinct count.
	assert.Len(t, seen, int(view.UniqueValueCount()))
	for g := range view.UniqueValueCount() {
		assert.True(t, seen[g], "global ordinal %d unreachable", g)
	}

	// Strictly increasing value order.
	var prev []byte
	for g := uint64(0); g < view.UniqueValueCount(); g++ {
		b, err := view.AppendValueForGlobalOrdinal(nil, g)
		require.NoError(t, err)
		if g > 0 {
			assert.Equal(t, -1, slices.Compare(prev, b))
		}
		prev = b
	}
}

func TestMergeBuilder_PropagatesSourceError(t *testing.T) {
	boom := errors.New("iteration failed")
	bad := newStubSource("a", "b", "c")
	bad.errAt, bad.err = 1, boom

	_, err := NewMergeBuilder(0).Build(t.Context(), []TermSource{newStubSource("x"), bad})

	assert.ErrorIs(t, err, boom)
}

func TestMergeBuilder_UnsortedTermsFailBuild(t *testing.T) {
	bad := newStubSource("b", "a")

	_, err := NewMergeBuilder(0).Build(t.Context(), []TermSource{bad})

	var unsorted *UnsortedTermsError
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, 0, unsorted.SegmentIndex)
	assert.Equal(t, []byte("b"), unsorted.Previous)
	assert.Equal(t, []byte("a"), unsorted.Current)
}

func TestMergeBuilder_MemorySize(t *testing.T) {
	_, res := buildViews(t,
		newStubSource("a", "c"),
		newStubSource("b", "c", "d"),
	)

	want := res.Table.MemorySize()
	for _, m := range res.Maps {
		want += m.MemorySize()
	}
	assert.Equal(t, want, res.MemorySize)
	assert.Positive(t, res.MemorySize)
}

func TestMergeBuilder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewMergeBuilder(0).Build(ctx, []TermSource{newStubSource("a")})
	assert.ErrorIs(t, err, context.Canceled)
}
