package ordinals

// packedUints is an immutable uint64 array stored in the narrowest integer
// lane that fits its maximum value. The attribution table and the explicit
// ordinal maps are monotonic, so the final element bounds the whole array
// and a single width covers every entry.
type packedUints struct {
	n   int
	u8  []uint8
	u16 []uint16
	u32 []uint32
	u64 []uint64
}

// packUints copies vals into the narrowest lane that fits max(vals).
func packUints(vals []uint64) packedUints {
	var maxVal uint64
	for _, v := range vals {
		if v > maxVal {
			maxVal = v
		}
	}

	p := packedUints{n: len(vals)}
	switch {
	case maxVal <= 0xff:
		p.u8 = make([]uint8, len(vals))
		for i, v := range vals {
			p.u8[i] = uint8(v)
		}
	case maxVal <= 0xffff:
		p.u16 = make([]uint16, len(vals))
		for i, v := range vals {
			p.u16[i] = uint16(v)
		}
	case maxVal <= 0xffffffff:
		p.u32 = make([]uint32, len(vals))
		for i, v := range vals {
			p.u32[i] = uint32(v)
		}
	default:
		p.u64 = append([]uint64(nil), vals...)
	}
	return p
}

// Get returns the value at index i. Indexing outside [0, Len()) panics.
func (p packedUints) Get(i uint64) uint64 {
	switch {
	case p.u8 != nil:
		return uint64(p.u8[i])
	case p.u16 != nil:
		return uint64(p.u16[i])
	case p.u32 != nil:
		return uint64(p.u32[i])
	default:
		return p.u64[i]
	}
}

// Len returns the number of entries.
func (p packedUints) Len() int {
	return p.n
}

// MemorySize returns the byte size of the backing array.
func (p packedUints) MemorySize() int64 {
	switch {
	case p.u8 != nil:
		return int64(len(p.u8))
	case p.u16 != nil:
		return int64(len(p.u16)) * 2
	case p.u32 != nil:
		return int64(len(p.u32)) * 4
	default:
		return int64(len(p.u64)) * 8
	}
}
