// Package visible turns a frame's culled visible lights into a dense, budgeted,
// sorted list ready for GPU upload.
package visible

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/jobs"
	"github.com/gekko3d/lightloop/lightrt/lightsort"
	"github.com/gekko3d/lightloop/lightrt/profile"
	"github.com/gekko3d/lightloop/lightrt/registry"
)

const (
	DefaultBatchSize = 32

	minArrayCapacity = 32
	// Lights covering less than one pixel are rejected.
	minScreenArea = 1
)

var (
	ErrProcessorBusy = errors.New("visible: processor was not reset before PrepareLightsForGPU")
	ErrNoRegistry    = errors.New("visible: processor has no light registry")
	ErrNoScheduler   = errors.New("visible: processor has no job scheduler")
)

type state uint8

const (
	stateIdle state = iota
	stateBuilding
	stateDisposed
)

type countSlot uint8

const (
	slotProcessed countSlot = iota
	slotDirectional
	slotPunctual
	slotArea
	countSlotCount
)

// Profiler scope names, one per pipeline step.
const (
	ScopeBuild    = "build"
	ScopeAOV      = "aov"
	ScopeClassify = "classify"
	ScopeShadows  = "shadows"
	ScopeDebug    = "debug_filter"
	ScopeSort     = "sort"
)

// Processor holds the per-frame scratch state of the visible-light pipeline.
// Obtain processors from a Pool; a processor is used by one goroutine at a time.
type Processor struct {
	id        string
	registry  *registry.Registry
	scheduler *jobs.Scheduler
	logger    core.Logger
	profiler  *profile.Profiler
	sorter    lightsort.Sorter
	batchSize int

	state state

	visibleLights   []core.VisibleLight
	visibleEntities []registry.Record
	visibleBaking   []core.BakingOutput
	visibleShadows  []core.ShadowMode

	processed []ProcessedLight
	sorted    []ProcessedLight
	keys      []uint32
	perm      []int32
	// slotOf maps a visible index to its output slot, -1 when rejected.
	slotOf []int32

	counts     [countSlotCount]atomic.Int32
	rejections [rejectReasonCount]atomic.Int32
	stats      Stats
}

func newProcessor(reg *registry.Registry, scheduler *jobs.Scheduler, logger core.Logger) *Processor {
	return &Processor{
		id:        uuid.NewString(),
		registry:  reg,
		scheduler: scheduler,
		logger:    core.OrNop(logger),
		profiler:  profile.NewProfiler(),
		batchSize: DefaultBatchSize,
	}
}

func (p *Processor) ID() string { return p.id }

// SetBatchSize sets how many visible lights one classification task handles.
func (p *Processor) SetBatchSize(n int) {
	if n > 0 {
		p.batchSize = n
	}
}

// Reset clears the outputs of the previous frame and arms the processor.
func (p *Processor) Reset() {
	if p.state == stateDisposed {
		return
	}
	p.visibleLights = nil
	p.visibleEntities = p.visibleEntities[:0]
	p.visibleBaking = p.visibleBaking[:0]
	p.visibleShadows = p.visibleShadows[:0]
	p.processed = p.processed[:0]
	p.sorted = p.sorted[:0]
	for i := range p.counts {
		p.counts[i].Store(0)
	}
	for i := range p.rejections {
		p.rejections[i].Store(0)
	}
	p.stats = Stats{}
	p.profiler.Reset()
	p.state = stateBuilding
}

// PrepareLightsForGPU runs build, AOV filter, classification, shadow
// reservation, debug filter and sort, in that order.
func (p *Processor) PrepareLightsForGPU(frame Frame) error {
	if p.state != stateBuilding {
		return ErrProcessorBusy
	}
	if p.registry == nil {
		return ErrNoRegistry
	}
	if p.scheduler == nil {
		return ErrNoScheduler
	}
	p.state = stateIdle
	start := time.Now()

	data, ok := p.build(frame)
	if !ok {
		p.stats.Elapsed = time.Since(start)
		return nil
	}
	if frame.AOV != nil {
		p.filterAOV(frame.AOV, data)
	}
	p.classifyAll(frame, data)
	p.reserveShadows(frame, data)
	if frame.DebugFilter != nil {
		p.filterDebug(frame.DebugFilter)
	}
	p.sortProcessed()
	p.stats.Elapsed = time.Since(start)

	if p.logger.DebugEnabled() {
		p.logger.Debugf("visible lights [%s]: %s", p.id[:8], p.stats)
	}
	return nil
}

func (p *Processor) build(frame Frame) (registry.LightData, bool) {
	defer p.profiler.Scope(ScopeBuild)()

	if err := p.registry.CompleteTransformJob(); err != nil {
		p.logger.Warnf("visible lights [%s]: %v", p.id[:8], err)
	}

	var lights []core.VisibleLight
	if frame.Culling != nil {
		lights = frame.Culling.VisibleLights()
	}
	p.stats.Visible = len(lights)
	if len(lights) > core.MaxVisibleLights {
		p.stats.Truncated = len(lights) - core.MaxVisibleLights
		p.logger.Warnf("visible lights [%s]: %d visible lights exceed the limit of %d, dropping %d",
			p.id[:8], len(lights), core.MaxVisibleLights, p.stats.Truncated)
		lights = lights[:core.MaxVisibleLights]
	}

	data := p.registry.Data()
	if len(lights) == 0 || data.Len() == 0 {
		return data, false
	}

	n := len(lights)
	p.reserve(n)
	p.visibleLights = lights
	for i, vl := range lights {
		rec := p.registry.FindEntity(vl.SourceID)
		p.visibleEntities[i] = rec
		p.visibleBaking[i] = vl.Baking
		p.visibleShadows[i] = vl.Shadows
		if rec.Valid() {
			p.stats.Resolved++
		}
	}
	return data, true
}

func (p *Processor) filterAOV(aov AOVFilter, data registry.LightData) {
	defer p.profiler.Scope(ScopeAOV)()

	for i, rec := range p.visibleEntities {
		if !rec.Valid() {
			continue
		}
		obj := data.AOVObjects[rec.DataIndex]
		if obj == nil || aov.IsEnabled(obj) {
			continue
		}
		p.visibleEntities[i] = registry.InvalidRecord
		p.stats.AOVFiltered++
	}
}

func (p *Processor) classifyAll(frame Frame, data registry.LightData) {
	defer p.profiler.Scope(ScopeClassify)()

	ctx := newClassifyContext(frame, data)
	n := len(p.visibleEntities)
	p.processed = p.processed[:n]
	p.scheduler.ParallelFor(n, p.batchSize, func(i int) {
		p.classify(&ctx, i)
	}).Complete()

	count := int(p.counts[slotProcessed].Load())
	p.processed = p.processed[:count]
	p.stats.Processed = count
	for r := range p.rejections {
		p.stats.Rejected[r] = int(p.rejections[r].Load())
	}
	p.profiler.SetCount("processed", count)
}

func (p *Processor) reserveShadows(frame Frame, data registry.LightData) {
	defer p.profiler.Scope(ScopeShadows)()

	// Output slots are handed out in scheduling order; reserve in visible
	// order so a saturated atlas always keeps the same lights.
	slotOf := p.slotOf[:len(p.visibleEntities)]
	for i := range slotOf {
		slotOf[i] = -1
	}
	for slot := range p.processed {
		slotOf[p.processed[slot].VisibleIndex] = int32(slot)
	}

	for _, slot := range slotOf {
		if slot < 0 {
			continue
		}
		pl := &p.processed[slot]
		if !pl.ShadowFlags.Has(core.WillRenderShadowMap) {
			continue
		}
		p.stats.ShadowRequests++
		if frame.Shadows == nil {
			pl.ShadowFlags = core.ShadowMapNone
			p.stats.ShadowDenied++
			continue
		}
		di := pl.Entity.DataIndex
		req := ShadowRequest{
			VisibleIndex:       pl.VisibleIndex,
			Entity:             pl.Entity,
			Light:              p.visibleLights[pl.VisibleIndex],
			LightType:          pl.LightType,
			GPUType:            pl.GPUType,
			Flags:              pl.ShadowFlags,
			Position:           pl.Position,
			DistanceToCamera:   pl.DistanceToCamera,
			ShadowDimmer:       data.ShadowDimmers[di],
			ShadowFadeDistance: data.ShadowFadeDistances[di],
			AdditionalData:     data.AdditionalData[di],
		}
		if frame.Shadows.TryReserve(req) {
			p.stats.ShadowReserved++
			continue
		}
		pl.ShadowFlags = core.ShadowMapNone
		p.stats.ShadowDenied++
	}
}

func (p *Processor) filterDebug(filter DebugLightFilter) {
	defer p.profiler.Scope(ScopeDebug)()

	for i := range p.processed {
		pl := &p.processed[i]
		if filter.IsEnabledFor(pl.GPUType, pl.SpotShape) {
			continue
		}
		pl.Entity = registry.InvalidRecord
		p.stats.DebugFiltered++
	}
}

func (p *Processor) sortProcessed() {
	defer p.profiler.Scope(ScopeSort)()

	n := len(p.processed)
	keys := p.keys[:n]
	perm := p.perm[:n]
	for i := range p.processed {
		keys[i] = p.processed[i].SortKey
		perm[i] = int32(i)
	}
	p.stats.SortStrategy = p.sorter.Sort(keys, perm)

	p.sorted = p.sorted[:n]
	for i, src := range perm {
		p.sorted[i] = p.processed[src]
	}
}

// reserve grows the scratch arrays to hold n visible lights.
func (p *Processor) reserve(n int) {
	if cap(p.visibleEntities) < n {
		size := max(n, minArrayCapacity, 2*cap(p.visibleEntities))
		p.visibleEntities = make([]registry.Record, 0, size)
		p.visibleBaking = make([]core.BakingOutput, 0, size)
		p.visibleShadows = make([]core.ShadowMode, 0, size)
		p.processed = make([]ProcessedLight, 0, size)
		p.sorted = make([]ProcessedLight, 0, size)
		p.keys = make([]uint32, size)
		p.perm = make([]int32, size)
		p.slotOf = make([]int32, size)
	}
	p.visibleEntities = p.visibleEntities[:n]
	p.visibleBaking = p.visibleBaking[:n]
	p.visibleShadows = p.visibleShadows[:n]
}

// Capacity is the number of visible lights the scratch arrays hold without growing.
func (p *Processor) Capacity() int { return cap(p.visibleEntities) }

// Count is the number of processed lights, including debug-filtered ones.
func (p *Processor) Count() int { return len(p.processed) }

// Processed returns the processed lights in output-slot order.
func (p *Processor) Processed() []ProcessedLight { return p.processed }

// Sorted returns the processed lights ordered by sort key.
func (p *Processor) Sorted() []ProcessedLight { return p.sorted }

func (p *Processor) LightCounts() LightCounts {
	return LightCounts{
		Directional: int(p.counts[slotDirectional].Load()),
		Punctual:    int(p.counts[slotPunctual].Load()),
		Area:        int(p.counts[slotArea].Load()),
	}
}

func (p *Processor) Stats() Stats { return p.stats }

// Profile formats the step timings of the last frame.
func (p *Processor) Profile() string { return p.profiler.String() }

// VisibleEntities returns the resolved record of every visible light of the frame.
func (p *Processor) VisibleEntities() []registry.Record { return p.visibleEntities }

func (p *Processor) dispose() {
	p.visibleLights = nil
	p.visibleEntities = nil
	p.visibleBaking = nil
	p.visibleShadows = nil
	p.processed = nil
	p.sorted = nil
	p.keys = nil
	p.perm = nil
	p.slotOf = nil
	p.sorter.Release()
	p.state = stateDisposed
}

func (p *Processor) String() string {
	return fmt.Sprintf("Processor(%s, count=%d)", p.id[:8], len(p.processed))
}
