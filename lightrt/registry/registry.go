// Package registry stores per-light attributes for every light in the scene.
//
// Attributes live in parallel columns indexed by a data slot. Entities are
// addressed by handles whose indices are recycled first-in first-out. Slots are
// kept dense with swap-removal, so a Record's DataIndex changes when another
// entity is destroyed; resolve through FindEntity every frame.
//
// A Registry is mutated by a single owner. Any number of readers may use Data
// concurrently while no mutation is in progress.
package registry

import (
	"errors"
	"fmt"

	"github.com/gekko3d/lightloop/lightrt/core"
)

const baselineCapacity = 100

var (
	ErrInvalidHandle   = errors.New("registry: handle out of range")
	ErrStaleHandle     = errors.New("registry: handle refers to a destroyed entity")
	ErrDuplicateSource = errors.New("registry: source id already registered")
)

type Registry struct {
	logger core.Logger

	cols     lightColumns
	count    int
	capacity int

	records  []Record       // indexed by Handle.index
	freeList []int          // recycled handle indices, oldest first
	bySource map[int]Handle // source id -> owning handle

	job *transformJob
}

func New(logger core.Logger) *Registry {
	return &Registry{
		logger:   core.OrNop(logger),
		bySource: make(map[int]Handle),
	}
}

func (r *Registry) Count() int    { return r.count }
func (r *Registry) Capacity() int { return r.capacity }

// IsValid only checks that the handle index is in range.
func (r *Registry) IsValid(h Handle) bool {
	return h.index >= 0 && h.index < len(r.records)
}

// CreateEntity registers a light and returns the handle owning its slot.
func (r *Registry) CreateEntity(sourceID int, transform core.TransformSource, opts ...LightOption) (Handle, error) {
	r.completePendingJob()

	if _, exists := r.bySource[sourceID]; exists {
		return InvalidHandle, fmt.Errorf("create entity for source %d: %w", sourceID, ErrDuplicateSource)
	}

	if r.count == r.capacity {
		r.grow(r.count + 1)
	}

	h := r.allocHandle()
	slot := r.count
	r.count++

	params := DefaultLightParams()
	for _, opt := range opts {
		opt(&params)
	}
	r.cols.write(slot, params, h, transform)

	r.records[h.index] = Record{DataIndex: slot, SourceID: sourceID}
	r.bySource[sourceID] = h

	if r.logger.DebugEnabled() {
		r.logger.Debugf("light entity created: source=%d handle=%d slot=%d", sourceID, h.index, slot)
	}
	return h, nil
}

func (r *Registry) allocHandle() Handle {
	if len(r.freeList) > 0 {
		idx := r.freeList[0]
		r.freeList = r.freeList[1:]
		return Handle{index: idx}
	}
	r.records = append(r.records, InvalidRecord)
	return Handle{index: len(r.records) - 1}
}

func (r *Registry) grow(needed int) {
	newCap := max(2*r.capacity, needed, baselineCapacity)
	r.cols.resize(newCap)
	r.logger.Debugf("light registry grown: %d -> %d", r.capacity, newCap)
	r.capacity = newCap
}

// DestroyEntity removes the entity and swaps the last live slot into its place.
// Destroying the last entity releases all storage.
func (r *Registry) DestroyEntity(h Handle) error {
	r.completePendingJob()

	slot, err := r.slot(h)
	if err != nil {
		return fmt.Errorf("destroy entity: %w", err)
	}

	rec := r.records[h.index]
	delete(r.bySource, rec.SourceID)

	last := r.count - 1
	if slot != last {
		r.cols.move(slot, last)
		moved := r.cols.owners[slot]
		r.records[moved.index].DataIndex = slot
	}
	r.cols.clear(last)
	r.count--

	r.records[h.index] = InvalidRecord
	r.freeList = append(r.freeList, h.index)

	if r.logger.DebugEnabled() {
		r.logger.Debugf("light entity destroyed: source=%d handle=%d slot=%d", rec.SourceID, h.index, slot)
	}

	if r.count == 0 {
		r.release()
	}
	return nil
}

// FindEntity returns the record registered for sourceID, or InvalidRecord.
func (r *Registry) FindEntity(sourceID int) Record {
	h, ok := r.bySource[sourceID]
	if !ok {
		return InvalidRecord
	}
	return r.records[h.index]
}

// Lookup returns the handle owning sourceID.
func (r *Registry) Lookup(sourceID int) (Handle, bool) {
	h, ok := r.bySource[sourceID]
	return h, ok
}

// Record returns the record for h, or InvalidRecord for a destroyed or out of range handle.
func (r *Registry) Record(h Handle) Record {
	if !r.IsValid(h) {
		return InvalidRecord
	}
	return r.records[h.index]
}

func (r *Registry) Params(h Handle) (LightParams, error) {
	slot, err := r.slot(h)
	if err != nil {
		return LightParams{}, err
	}
	return r.cols.params(slot), nil
}

// Data returns read-only views over the live slots.
func (r *Registry) Data() LightData {
	return r.cols.view(r.count)
}

// Clear destroys every entity and releases all storage.
func (r *Registry) Clear() {
	r.completePendingJob()
	n := r.count
	r.release()
	if n > 0 {
		r.logger.Infof("light registry cleared: %d entities", n)
	}
}

func (r *Registry) release() {
	r.cols = lightColumns{}
	r.count = 0
	r.capacity = 0
	r.records = nil
	r.freeList = nil
	r.bySource = make(map[int]Handle)
}

func (r *Registry) slot(h Handle) (int, error) {
	if !r.IsValid(h) {
		return -1, ErrInvalidHandle
	}
	rec := r.records[h.index]
	if !rec.Valid() {
		return -1, ErrStaleHandle
	}
	return rec.DataIndex, nil
}

// Validate checks that the columns, records and reverse map agree.
func (r *Registry) Validate() error {
	if r.count > r.capacity {
		return fmt.Errorf("registry: count %d exceeds capacity %d", r.count, r.capacity)
	}
	for i, n := range r.cols.lengths() {
		if n != r.capacity {
			return fmt.Errorf("registry: column %d has length %d, capacity is %d", i, n, r.capacity)
		}
	}
	if len(r.bySource) != r.count {
		return fmt.Errorf("registry: reverse map has %d entries for %d entities", len(r.bySource), r.count)
	}
	for slot := 0; slot < r.count; slot++ {
		owner := r.cols.owners[slot]
		if !r.IsValid(owner) {
			return fmt.Errorf("registry: slot %d owned by out of range handle %d", slot, owner.index)
		}
		rec := r.records[owner.index]
		if rec.DataIndex != slot {
			return fmt.Errorf("registry: slot %d owned by handle %d whose record points at %d", slot, owner.index, rec.DataIndex)
		}
		if h, ok := r.bySource[rec.SourceID]; !ok || h != owner {
			return fmt.Errorf("registry: source %d does not map back to handle %d", rec.SourceID, owner.index)
		}
	}
	live := 0
	for _, rec := range r.records {
		if rec.Valid() {
			live++
		}
	}
	if live+len(r.freeList) != len(r.records) || live != r.count {
		return fmt.Errorf("registry: %d live records and %d free handles for %d handles and %d entities",
			live, len(r.freeList), len(r.records), r.count)
	}
	return nil
}
