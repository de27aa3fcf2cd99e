package ordinals

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinalMap_CollapsesToIdentity(t *testing.T) {
	m := newOrdinalMap([]uint64{0, 1, 2, 3})

	assert.True(t, m.IsIdentity())
	assert.Equal(t, int64(0), m.MemorySize())
	assert.Equal(t, uint64(7), m.Global(7)) // identity is total
}

func TestOrdinalMap_Explicit(t *testing.T) {
	m := newOrdinalMap([]uint64{0, 2, 5})

	assert.False(t, m.IsIdentity())
	assert.Equal(t, uint64(0), m.Global(0))
	assert.Equal(t, uint64(2), m.Global(1))
	assert.Equal(t, uint64(5), m.Global(2))
	assert.Positive(t, m.MemorySize())
}

func TestOrdinalMap_Remap(t *testing.T) {
	m := newOrdinalMap([]uint64{1, 3, 4})

	locals := func(yield func(uint64) bool) {
		for _, v := range []uint64{2, 0, 2} {
			if !yield(v) {
				return
			}
		}
	}

	got := slices.Collect(m.Remap(locals))
	assert.Equal(t, []uint64{4, 1, 4}, got)

	// Identity remap hands back the source sequence itself.
	id := IdentityOrdinalMap()
	assert.Equal(t, []uint64{2, 0, 2}, slices.Collect(id.Remap(locals)))
}
