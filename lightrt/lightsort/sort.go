// Package lightsort orders packed light sort keys together with a permutation array.
//
// All strategies are stable and sort ascending. Keys that embed a unique index,
// as light sort keys do, therefore produce the same order under every strategy.
package lightsort

import "fmt"

const (
	InsertionSortMax = 32
	MergeSortMax     = 200
)

type Strategy uint8

const (
	StrategyInsertion Strategy = iota
	StrategyMerge
	StrategyRadix
)

func (s Strategy) String() string {
	switch s {
	case StrategyInsertion:
		return "insertion"
	case StrategyMerge:
		return "merge"
	case StrategyRadix:
		return "radix"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Choose picks the strategy for a population of n keys.
func Choose(n int) Strategy {
	switch {
	case n <= InsertionSortMax:
		return StrategyInsertion
	case n <= MergeSortMax:
		return StrategyMerge
	default:
		return StrategyRadix
	}
}

// Sorter owns the scratch buffers used by the merge and radix strategies.
// The zero value is ready to use. A Sorter is not safe for concurrent use.
type Sorter struct {
	keys []uint32
	perm []int32
}

// Sort orders keys ascending and applies the same moves to perm.
// len(perm) must equal len(keys).
func (s *Sorter) Sort(keys []uint32, perm []int32) Strategy {
	if len(perm) != len(keys) {
		panic(fmt.Sprintf("lightsort: %d keys but %d permutation entries", len(keys), len(perm)))
	}
	strategy := Choose(len(keys))
	switch strategy {
	case StrategyInsertion:
		InsertionSort(keys, perm)
	case StrategyMerge:
		s.reserve(len(keys))
		MergeSort(keys, perm, s.keys, s.perm)
	default:
		s.reserve(len(keys))
		RadixSort(keys, perm, s.keys, s.perm)
	}
	return strategy
}

func (s *Sorter) reserve(n int) {
	if cap(s.keys) < n {
		s.keys = make([]uint32, n)
		s.perm = make([]int32, n)
	}
	s.keys = s.keys[:n]
	s.perm = s.perm[:n]
}

// Release drops the scratch buffers.
func (s *Sorter) Release() {
	s.keys = nil
	s.perm = nil
}
