// Package model defines core identity types used throughout globalord.
//
// # Identity Types
//
//   - SegmentID: Unique identifier for a segment (uint64)
//   - SnapshotID: Opaque reader-snapshot identity token (comparable)
//
// Local and global ordinals are plain uint64 values: dense, zero-based
// positions into a segment dictionary and into the merged snapshot
// dictionary respectively. They carry no type of their own because they
// are constantly used as array indexes.
package model
