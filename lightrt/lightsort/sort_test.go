package lightsort

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKeys(rng *rand.Rand, n int, mask uint32) ([]uint32, []int32) {
	keys := make([]uint32, n)
	perm := make([]int32, n)
	for i := range keys {
		keys[i] = rng.Uint32() & mask
		perm[i] = int32(i)
	}
	return keys, perm
}

func clone(keys []uint32, perm []int32) ([]uint32, []int32) {
	k := make([]uint32, len(keys))
	p := make([]int32, len(perm))
	copy(k, keys)
	copy(p, perm)
	return k, p
}

// reference is a stable sort of (key, original index) pairs.
func reference(keys []uint32, perm []int32) ([]uint32, []int32) {
	k, p := clone(keys, perm)
	idx := make([]int, len(k))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return k[idx[a]] < k[idx[b]] })
	outK := make([]uint32, len(k))
	outP := make([]int32, len(p))
	for i, j := range idx {
		outK[i] = k[j]
		outP[i] = p[j]
	}
	return outK, outP
}

func TestChoose(t *testing.T) {
	assert.Equal(t, StrategyInsertion, Choose(0))
	assert.Equal(t, StrategyInsertion, Choose(32))
	assert.Equal(t, StrategyMerge, Choose(33))
	assert.Equal(t, StrategyMerge, Choose(200))
	assert.Equal(t, StrategyRadix, Choose(201))
}

func TestStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []int{0, 1, 2, 17, 32, 33, 100, 200, 201, 1000, 5000}
	masks := []uint32{0xFFFFFFFF, 0xFF, 0x0F0000FF, 0x7}

	for _, n := range sizes {
		for _, mask := range masks {
			keys, perm := randomKeys(rng, n, mask)
			wantK, wantP := reference(keys, perm)

			k, p := clone(keys, perm)
			InsertionSort(k, p)
			assert.Equal(t, wantK, k, "insertion keys n=%d mask=%x", n, mask)
			assert.Equal(t, wantP, p, "insertion perm n=%d mask=%x", n, mask)

			k, p = clone(keys, perm)
			MergeSort(k, p, make([]uint32, n), make([]int32, n))
			assert.Equal(t, wantK, k, "merge keys n=%d mask=%x", n, mask)
			assert.Equal(t, wantP, p, "merge perm n=%d mask=%x", n, mask)

			k, p = clone(keys, perm)
			RadixSort(k, p, make([]uint32, n), make([]int32, n))
			assert.Equal(t, wantK, k, "radix keys n=%d mask=%x", n, mask)
			assert.Equal(t, wantP, p, "radix perm n=%d mask=%x", n, mask)

			var s Sorter
			k, p = clone(keys, perm)
			assert.Equal(t, Choose(n), s.Sort(k, p))
			assert.Equal(t, wantK, k)
			assert.Equal(t, wantP, p)
		}
	}
}

func TestRadixSortSkipsUniformPasses(t *testing.T) {
	tests := []struct {
		name   string
		keys   []uint32
		passes int
	}{
		{"all equal", []uint32{0xAABBCCDD, 0xAABBCCDD, 0xAABBCCDD}, 0},
		{"low byte only", []uint32{3, 1, 2, 0}, 1},
		{"high byte only", []uint32{3 << 24, 1 << 24, 2 << 24}, 1},
		{"low and high", []uint32{1<<24 | 5, 2<<24 | 4, 1<<24 | 3}, 2},
		{"every byte", []uint32{0x01010101, 0x02020202}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.keys)
			perm := make([]int32, n)
			for i := range perm {
				perm[i] = int32(i)
			}
			wantK, wantP := reference(tt.keys, perm)

			keys := append([]uint32(nil), tt.keys...)
			got := RadixSort(keys, perm, make([]uint32, n), make([]int32, n))
			assert.Equal(t, tt.passes, got)
			assert.Equal(t, wantK, keys)
			assert.Equal(t, wantP, perm)
		})
	}
}

func TestSorterReusesScratch(t *testing.T) {
	var s Sorter
	rng := rand.New(rand.NewSource(1))

	keys, perm := randomKeys(rng, 500, 0xFFFFFFFF)
	s.Sort(keys, perm)
	require.True(t, sort.SliceIsSorted(keys, func(a, b int) bool { return keys[a] < keys[b] }))
	first := &s.keys[0]

	keys, perm = randomKeys(rng, 300, 0xFFFFFFFF)
	assert.Equal(t, StrategyRadix, s.Sort(keys, perm))
	assert.Same(t, first, &s.keys[0])

	s.Release()
	assert.Nil(t, s.keys)
}

func TestSortPanicsOnLengthMismatch(t *testing.T) {
	var s Sorter
	assert.Panics(t, func() { s.Sort(make([]uint32, 3), make([]int32, 2)) })
}
