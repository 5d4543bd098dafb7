package visible

import (
	"errors"
	"sync"

	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/jobs"
	"github.com/gekko3d/lightloop/lightrt/registry"
)

var (
	ErrPoolDisposed   = errors.New("visible: processor pool is disposed")
	ErrForeignRelease = errors.New("visible: processor does not belong to this pool")
)

// Pool hands out processors bound to one registry and scheduler.
// It is safe for concurrent use.
type Pool struct {
	registry  *registry.Registry
	scheduler *jobs.Scheduler
	logger    core.Logger
	batchSize int

	mu       sync.Mutex
	free     []*Processor
	all      map[*Processor]bool // value reports whether the processor is checked out
	disposed bool
}

func NewPool(reg *registry.Registry, scheduler *jobs.Scheduler, logger core.Logger) *Pool {
	return &Pool{
		registry:  reg,
		scheduler: scheduler,
		logger:    core.OrNop(logger),
		batchSize: DefaultBatchSize,
		all:       make(map[*Processor]bool),
	}
}

// SetBatchSize applies to processors created after the call and to every released processor.
func (p *Pool) SetBatchSize(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n > 0 {
		p.batchSize = n
	}
}

// Warm creates processors up front so the first frames do not allocate them.
func (p *Pool) Warm(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.free) < n && !p.disposed {
		proc := p.newProcessorLocked()
		p.all[proc] = false
		p.free = append(p.free, proc)
	}
}

// Acquire returns a reset processor.
func (p *Pool) Acquire() (*Processor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return nil, ErrPoolDisposed
	}

	var proc *Processor
	if n := len(p.free); n > 0 {
		proc = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		proc = p.newProcessorLocked()
		p.logger.Debugf("visible light processor created: %s (pool size %d)", proc.id, len(p.all)+1)
	}
	p.all[proc] = true
	proc.Reset()
	return proc, nil
}

func (p *Pool) newProcessorLocked() *Processor {
	proc := newProcessor(p.registry, p.scheduler, p.logger)
	proc.SetBatchSize(p.batchSize)
	return proc
}

// Release returns proc to the pool. A processor checked out across Dispose has
// its scratch memory freed and reports ErrPoolDisposed.
func (p *Pool) Release(proc *Processor) error {
	if proc == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	inUse, ok := p.all[proc]
	if !ok {
		if p.disposed {
			proc.dispose()
			return ErrPoolDisposed
		}
		return ErrForeignRelease
	}
	if !inUse {
		p.logger.Warnf("visible light processor %s released twice", proc.id)
		return nil
	}
	p.all[proc] = false
	proc.SetBatchSize(p.batchSize)
	p.free = append(p.free, proc)
	return nil
}

// With acquires a processor, runs fn and releases the processor on every exit path.
func (p *Pool) With(fn func(*Processor) error) error {
	proc, err := p.Acquire()
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Release(proc); err != nil {
			p.logger.Warnf("release of visible light processor %s: %v", proc.id, err)
		}
	}()
	return fn(proc)
}

// Size is the number of processors ever created and not yet disposed.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all)
}

// InUse is the number of processors currently checked out.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all) - len(p.free)
}

// Dispose frees the scratch memory of every processor the pool created.
// Processors still checked out are disposed as well and must not be used afterwards.
func (p *Pool) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	for proc, inUse := range p.all {
		if inUse {
			p.logger.Warnf("visible light processor %s disposed while in use", proc.id)
		}
		proc.dispose()
	}
	p.logger.Debugf("visible light pool disposed: %d processors", len(p.all))
	p.all = make(map[*Processor]bool)
	p.free = nil
	p.disposed = true
}
