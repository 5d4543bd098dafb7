package jobs

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParallelForVisitsEveryIndexOnce(t *testing.T) {
	s := NewScheduler(4)
	defer s.Close()
	assert.Equal(t, 4, s.Workers())

	for _, n := range []int{0, 1, 31, 32, 33, 1000} {
		hits := make([]atomic.Int32, n)
		h := s.ParallelFor(n, 32, func(i int) {
			hits[i].Add(1)
		})
		h.Complete()

		for i := range hits {
			assert.Equal(t, int32(1), hits[i].Load(), "n=%d index %d", n, i)
		}
	}
}

func TestParallelForSharedCounter(t *testing.T) {
	s := NewScheduler(0)
	defer s.Close()
	var sum atomic.Int64
	s.ParallelFor(10000, 7, func(i int) {
		sum.Add(int64(i))
	}).Complete()
	assert.Equal(t, int64(10000*9999/2), sum.Load())
}

func TestCompleteRethrowsBatchPanic(t *testing.T) {
	s := NewScheduler(2)
	defer s.Close()
	h := s.ParallelFor(64, 8, func(i int) {
		if i == 40 {
			panic("boom")
		}
	})
	assert.PanicsWithValue(t, "boom", h.Complete)
}

func TestNilHandleComplete(t *testing.T) {
	var h *Handle
	assert.NotPanics(t, h.Complete)
}

func TestCloseStopsWorkers(t *testing.T) {
	before := runtime.NumGoroutine()

	schedulers := make([]*Scheduler, 10)
	for i := range schedulers {
		schedulers[i] = NewScheduler(8)
		schedulers[i].ParallelFor(256, 4, func(int) {}).Complete()
	}
	assert.GreaterOrEqual(t, runtime.NumGoroutine(), before+80)

	for _, s := range schedulers {
		s.Close()
		s.Close()
		assert.True(t, s.Closed())
	}
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 3*time.Second, 10*time.Millisecond)
}

func TestParallelForAfterClose(t *testing.T) {
	s := NewScheduler(2)
	s.Close()

	var sum atomic.Int64
	s.ParallelFor(100, 8, func(i int) {
		sum.Add(int64(i))
	}).Complete()
	assert.Equal(t, int64(100*99/2), sum.Load())
}
