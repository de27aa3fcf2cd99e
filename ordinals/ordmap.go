package ordinals

import (
	"iter"
)

// OrdinalMap is the monotonic local→global ordinal function for one
// segment. It is a tagged variant: either the identity (no array
// materialized, the segment's local order already occupies a compatible
// global prefix) or an explicit packed array. The zero value is the
// identity map.
//
// Consumers branch on IsIdentity once per segment, never per lookup.
type OrdinalMap struct {
	global packedUints // unset for the identity map
	mapped bool
}

// IdentityOrdinalMap returns the map that leaves local ordinals unchanged.
func IdentityOrdinalMap() OrdinalMap {
	return OrdinalMap{}
}

// newOrdinalMap packs globals into an explicit map, collapsing to the
// identity when every entry equals its index.
func newOrdinalMap(globals []uint64) OrdinalMap {
	identity := true
	for i, g := range globals {
		if g != uint64(i) {
			identity = false
			break
		}
	}
	if identity {
		return IdentityOrdinalMap()
	}
	return OrdinalMap{global: packUints(globals), mapped: true}
}

// IsIdentity reports whether the map performs no remapping.
func (m OrdinalMap) IsIdentity() bool {
	return !m.mapped
}

// Global maps a local ordinal to its global ordinal. For an explicit map,
// a local ordinal outside the segment's dense range panics: the caller
// (the engine's column store) has broken its contract.
func (m OrdinalMap) Global(local uint64) uint64 {
	if !m.mapped {
		return local
	}
	return m.global.Get(local)
}

// Remap maps a local-ordinal sequence through the map, preserving order.
// The identity map returns locals itself, unchanged.
func (m OrdinalMap) Remap(locals iter.Seq[uint64]) iter.Seq[uint64] {
	if !m.mapped {
		return locals
	}
	return func(yield func(uint64) bool) {
		for local := range locals {
			if !yield(m.global.Get(local)) {
				return
			}
		}
	}
}

// MemorySize returns the byte size of the backing array, zero for the
// identity map.
func (m OrdinalMap) MemorySize() int64 {
	if !m.mapped {
		return 0
	}
	return m.global.MemorySize()
}
