package ordinals

import (
	"errors"
	"fmt"
)

// ErrUnsupported signals an operation this core deliberately does not
// provide (e.g. global-ordinal sort comparators). It is a branch point for
// callers, not a failure: test with errors.Is and fall back, never retry.
var ErrUnsupported = errors.New("operation not supported on global ordinals")

// UnsortedTermsError indicates a TermSource violated its contract by
// yielding terms out of lexicographic order or with duplicates. This is a
// programming error in the collaborator, not a retryable condition: the
// builder performs no defensive re-sorting.
type UnsortedTermsError struct {
	SegmentIndex int
	Previous     []byte
	Current      []byte
}

func (e *UnsortedTermsError) Error() string {
	return fmt.Sprintf("segment %d: term enumeration not strictly increasing: %q after %q",
		e.SegmentIndex, e.Current, e.Previous)
}

// OrdinalOutOfRangeError indicates a lookup with an ordinal outside the
// valid dense range.
type OrdinalOutOfRangeError struct {
	Ordinal uint64
	Count   uint64
}

func (e *OrdinalOutOfRangeError) Error() string {
	return fmt.Sprintf("ordinal %d out of range [0,%d)", e.Ordinal, e.Count)
}
