// Package fielddata is an in-memory reference implementation of the
// per-segment column store the ordinals package builds on: it indexes one
// field's values for one segment and exposes them as an ordinals.TermSource.
//
// The enclosing engine normally supplies its own column store; this one
// backs tests, examples and small embedded deployments. Values are
// analyzed on the way in (keyword or UAX#29 text), per-term document
// postings are kept as roaring bitmaps, and sealing a writer freezes the
// sorted dictionary with dense local ordinals.
package fielddata

import (
	"iter"
	"sort"
	"strings"
	"unicode"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"

	"github.com/hupe1980/globalord/model"
	"github.com/hupe1980/globalord/ordinals"
)

// Analysis selects how Add turns a raw value into terms.
type Analysis int

const (
	// AnalysisKeyword indexes the whole value as a single term,
	// NFKC-normalized and lowercased.
	AnalysisKeyword Analysis = iota

	// AnalysisText splits the value with UAX#29 word segmentation and
	// indexes each word as a term, NFKC-normalized and lowercased.
	AnalysisText
)

// normalize applies Unicode normalization (NFKC) and converts to lowercase.
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// tokenize splits text into tokens using UAX#29 word segmentation,
// dropping whitespace and punctuation segments.
func tokenize(s string) []string {
	toks := words.FromString(s)
	var tokens []string
	for toks.Next() {
		if tok := toks.Value(); wordlike(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func wordlike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Writer accumulates one segment's field values. Writers are not safe for
// concurrent use; segments are built single-threaded and sealed before
// they become visible to readers.
type Writer struct {
	id       model.SegmentID
	analysis Analysis
	docTerms map[uint32][]string
	maxDoc   uint32
	sealed   bool
}

// NewWriter creates a writer for one segment's field.
func NewWriter(id model.SegmentID, analysis Analysis) *Writer {
	return &Writer{
		id:       id,
		analysis: analysis,
		docTerms: make(map[uint32][]string),
	}
}

// Add indexes a value for doc. Multiple calls per document append in call
// order; text analysis appends one term per word in reading order.
func (w *Writer) Add(doc uint32, value string) {
	var terms []string
	switch w.analysis {
	case AnalysisText:
		for _, tok := range tokenize(value) {
			terms = append(terms, normalize(tok))
		}
	default:
		terms = []string{normalize(value)}
	}

	w.docTerms[doc] = append(w.docTerms[doc], terms...)
	if doc >= w.maxDoc {
		w.maxDoc = doc + 1
	}
}

// Seal freezes the writer into an immutable Segment: the distinct terms
// are sorted into a dictionary with dense local ordinals, per-document
// term sequences become ordinal sequences, and per-term postings are
// finalized. The writer must not be used afterwards.
func (w *Writer) Seal() *Segment {
	if w.sealed {
		panic("fielddata: writer sealed twice")
	}
	w.sealed = true

	distinct := make(map[string]struct{})
	for _, terms := range w.docTerms {
		for _, t := range terms {
			distinct[t] = struct{}{}
		}
	}
	dict := make([]string, 0, len(distinct))
	for t := range distinct {
		dict = append(dict, t)
	}
	sort.Strings(dict)

	ordOf := make(map[string]uint64, len(dict))
	for i, t := range dict {
		ordOf[t] = uint64(i)
	}

	s := &Segment{
		id:       w.id,
		terms:    dict,
		postings: make(map[string]*roaring.Bitmap, len(dict)),
		docOrds:  make([][]uint64, w.maxDoc),
	}
	for doc, terms := range w.docTerms {
		ords := make([]uint64, len(terms))
		for i, t := range terms {
			ords[i] = ordOf[t]
			bm := s.postings[t]
			if bm == nil {
				bm = roaring.New()
				s.postings[t] = bm
			}
			bm.Add(doc)
		}
		s.docOrds[doc] = ords
	}
	return s
}

// Segment is a sealed, immutable per-segment field column. It implements
// ordinals.TermSource and is safe for concurrent reads.
type Segment struct {
	id       model.SegmentID
	terms    []string
	postings map[string]*roaring.Bitmap
	docOrds  [][]uint64
}

// Ensure Segment implements ordinals.TermSource
var _ ordinals.TermSource = (*Segment)(nil)

// ID returns the segment's engine-wide identifier.
func (s *Segment) ID() model.SegmentID {
	return s.id
}

// DocCount returns the number of addressable documents.
func (s *Segment) DocCount() uint32 {
	return uint32(len(s.docOrds))
}

// UniqueValueCount returns the number of distinct terms.
func (s *Segment) UniqueValueCount() uint64 {
	return uint64(len(s.terms))
}

// Terms enumerates the dictionary in increasing lexicographic order.
func (s *Segment) Terms() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for _, t := range s.terms {
			if !yield([]byte(t), nil) {
				return
			}
		}
	}
}

// DocOrdinals yields doc's local ordinals in the original value order.
// Documents outside the segment, or without values, yield nothing.
func (s *Segment) DocOrdinals(doc uint32) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		if doc >= uint32(len(s.docOrds)) {
			return
		}
		for _, ord := range s.docOrds[doc] {
			if !yield(ord) {
				return
			}
		}
	}
}

// ValueForOrdinal returns the term bytes for a local ordinal. The slice
// is freshly allocated, so this source is stricter than the shared-buffer
// convention its contract permits.
func (s *Segment) ValueForOrdinal(ord uint64) ([]byte, error) {
	if ord >= uint64(len(s.terms)) {
		return nil, &ordinals.OrdinalOutOfRangeError{Ordinal: ord, Count: uint64(len(s.terms))}
	}
	return []byte(s.terms[ord]), nil
}

// Postings returns the documents containing term, or nil if the term is
// absent. The bitmap is shared and must be treated as read-only.
func (s *Segment) Postings(term string) *roaring.Bitmap {
	return s.postings[normalize(term)]
}

// MemorySize approximates the bytes held by the dictionary, ordinal
// columns and postings.
func (s *Segment) MemorySize() int64 {
	var n int64
	for _, t := range s.terms {
		n += int64(len(t)) + 16
	}
	for _, ords := range s.docOrds {
		n += int64(len(ords)) * 8
	}
	for _, bm := range s.postings {
		n += int64(bm.GetSizeInBytes())
	}
	return n
}
