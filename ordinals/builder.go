package ordinals

import (
	"bytes"
	"container/heap"
	"context"
	"fmt"
	"iter"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildResult is the output of one merge: the shared attribution table,
// one ordinal map per input segment (index-aligned with the sources), and
// the exact byte size of every array the build allocated, for engine-wide
// memory accounting.
type BuildResult struct {
	Table      *AttributionTable
	Maps       []OrdinalMap
	MemorySize int64
}

// MergeBuilder merges per-segment sorted term dictionaries into one global
// ordinal space. A builder is stateless and safe for concurrent use; all
// per-build state lives on the stack of Build.
type MergeBuilder struct {
	prescanWorkers int
}

// NewMergeBuilder creates a MergeBuilder. prescanWorkers bounds the
// parallelism of the per-segment pre-scan; <= 0 uses GOMAXPROCS.
func NewMergeBuilder(prescanWorkers int) *MergeBuilder {
	if prescanWorkers <= 0 {
		prescanWorkers = runtime.GOMAXPROCS(0)
	}
	return &MergeBuilder{prescanWorkers: prescanWorkers}
}

// Build runs the k-way merge with duplicate elimination over sources,
// assigning global ordinals in strictly increasing value order. Ties
// between segments holding the same value break by ascending segment
// index, which pins both determinism and first-contributor attribution.
//
// There is no recoverable error path: any enumeration failure aborts the
// build and propagates wrapped; callers rebuild from scratch on the next
// access. Sources yielding out-of-order terms fail the build with
// UnsortedTermsError.
//
// Complexity is O(T log N) for T total terms across N segments.
func (b *MergeBuilder) Build(ctx context.Context, sources []TermSource) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Pre-scan dictionary sizes in parallel; the merge itself is
	// inherently sequential in value order.
	counts := make([]uint64, len(sources))
	var g errgroup.Group
	g.SetLimit(b.prescanWorkers)
	for i, src := range sources {
		g.Go(func() error {
			counts[i] = src.UniqueValueCount()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total uint64
	localToGlobal := make([][]uint64, len(sources))
	for i, n := range counts {
		localToGlobal[i] = make([]uint64, n)
		total += n
	}

	cursors := make([]*termCursor, 0, len(sources))
	defer func() {
		for _, c := range cursors {
			c.stop()
		}
	}()
	h := make(cursorHeap, 0, len(sources))
	for i, src := range sources {
		if counts[i] == 0 {
			// Empty segments contribute no cursor.
			continue
		}
		next, stop := iter.Pull2(src.Terms())
		c := &termCursor{segment: i, next: next, stop: stop}
		cursors = append(cursors, c)
		ok, err := c.advance()
		if err != nil {
			return nil, fmt.Errorf("merging segment dictionaries: %w", err)
		}
		if ok {
			h = append(h, c)
		}
	}
	heap.Init(&h)

	var (
		nextGlobal   uint64
		prev         []byte
		havePrev     bool
		firstSegment = make([]uint64, 0, total)
		firstDelta   = make([]uint64, 0, total)
	)
	for h.Len() > 0 {
		c := h[0]
		if havePrev && bytes.Equal(c.current, prev) {
			// Duplicate across segments: point at the ordinal already
			// assigned to this value, do not advance the global counter.
			localToGlobal[c.segment][c.local] = nextGlobal - 1
		} else {
			ord := nextGlobal
			localToGlobal[c.segment][c.local] = ord
			firstSegment = append(firstSegment, uint64(c.segment))
			firstDelta = append(firstDelta, ord-c.local)
			nextGlobal++
			prev = append(prev[:0], c.current...)
			havePrev = true
		}

		ok, err := c.advance()
		if err != nil {
			return nil, fmt.Errorf("merging segment dictionaries: %w", err)
		}
		if ok {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}

	table := &AttributionTable{
		firstSegment: packUints(firstSegment),
		firstDelta:   packUints(firstDelta),
	}
	maps := make([]OrdinalMap, len(sources))
	mem := table.MemorySize()
	for i := range localToGlobal {
		maps[i] = newOrdinalMap(localToGlobal[i])
		mem += maps[i].MemorySize()
	}
	return &BuildResult{Table: table, Maps: maps, MemorySize: mem}, nil
}

// termCursor is one segment's position in the merge. current always holds
// an owned copy of the head term, so it survives the source reusing its
// enumeration buffer and outlives heap sibling comparisons.
type termCursor struct {
	segment int
	next    func() ([]byte, error, bool)
	stop    func()
	current []byte
	local   uint64
	started bool
}

func (c *termCursor) advance() (bool, error) {
	term, err, ok := c.next()
	if !ok {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.started {
		if bytes.Compare(term, c.current) <= 0 {
			return false, &UnsortedTermsError{
				SegmentIndex: c.segment,
				Previous:     append([]byte(nil), c.current...),
				Current:      append([]byte(nil), term...),
			}
		}
		c.local++
	} else {
		c.started = true
	}
	c.current = append(c.current[:0], term...)
	return true, nil
}

// cursorHeap is a min-heap over cursors, keyed by current term with ties
// broken by ascending segment index.
type cursorHeap []*termCursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	if cmp := bytes.Compare(h[i].current, h[j].current); cmp != 0 {
		return cmp < 0
	}
	return h[i].segment < h[j].segment
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) { *h = append(*h, x.(*termCursor)) }

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return c
}
