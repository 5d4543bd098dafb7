// Package jobs runs data-parallel loops on a reusable worker pool.
package jobs

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

const (
	queueSize   = 256
	idleTimeout = 1 * time.Second
)

// Scheduler dispatches parallel-for batches onto a bounded set of reusable goroutines.
type Scheduler struct {
	pool    worker.DynamicWorkerPool
	workers int
	taskID  atomic.Int64
	closed  atomic.Bool
}

// NewScheduler creates a scheduler with the given number of workers.
// A non-positive count uses GOMAXPROCS.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{
		pool:    worker.NewDynamicWorkerPool(workers, queueSize, idleTimeout),
		workers: workers,
	}
}

func (s *Scheduler) Workers() int { return s.workers }

// Close stops the worker goroutines. Loops scheduled afterwards run on the
// calling goroutine. Close is idempotent.
func (s *Scheduler) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	// A pool worker only leaves its loop on its own stop id, and a sibling
	// can consume that id first. Each exit task ends exactly one worker.
	for i := 0; i < s.workers; i++ {
		s.pool.SubmitTask(worker.Task{
			ID: int(s.taskID.Add(1)),
			Do: func() (any, error) {
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	s.pool.Stop()
}

// Closed reports whether Close was called.
func (s *Scheduler) Closed() bool { return s.closed.Load() }

// Handle tracks the batches of one scheduled loop.
type Handle struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	panicked any
}

// Complete blocks until every batch has run. A panic raised by a batch is re-raised here.
func (h *Handle) Complete() {
	if h == nil {
		return
	}
	h.wg.Wait()
	h.mu.Lock()
	p := h.panicked
	h.mu.Unlock()
	if p != nil {
		panic(p)
	}
}

// ParallelFor runs fn(i) for every i in [0, n) in batches of batchSize.
// The returned handle must be completed before the results of fn are read.
func (s *Scheduler) ParallelFor(n, batchSize int, fn func(i int)) *Handle {
	h := &Handle{}
	if n <= 0 {
		return h
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if s.closed.Load() {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return h
	}

	for start := 0; start < n; start += batchSize {
		end := min(start+batchSize, n)
		h.wg.Add(1)
		lo, hi := start, end
		s.pool.SubmitTask(worker.Task{
			ID: int(s.taskID.Add(1)),
			Do: func() (any, error) {
				defer h.wg.Done()
				defer func() {
					if r := recover(); r != nil {
						h.mu.Lock()
						if h.panicked == nil {
							h.panicked = r
						}
						h.mu.Unlock()
					}
				}()
				for i := lo; i < hi; i++ {
					fn(i)
				}
				return nil, nil
			},
		})
	}
	return h
}
