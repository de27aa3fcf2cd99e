package model

import (
	"fmt"
)

// SegmentID is the unique identifier for a segment within an engine.
// It identifies a segment across snapshots; the position of a segment
// inside one snapshot is a plain int index.
type SegmentID uint64

// String returns a string representation of the SegmentID.
func (id SegmentID) String() string {
	return fmt.Sprintf("Seg(%d)", uint64(id))
}

// SnapshotID is the opaque identity of a reader snapshot: the fixed set
// of segments visible to queries at a point in time. It is supplied by
// the segment lifecycle manager and compared by identity, never by
// segment-set content. Two snapshots over identical segment sets are
// still distinct cache entries.
type SnapshotID string

// String returns the raw token.
func (id SnapshotID) String() string {
	return string(id)
}
