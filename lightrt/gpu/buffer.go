package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/visible"
)

// minRecords is the record capacity of the first buffer.
const minRecords = 64

// Buffer is a GPU buffer created by a Backend.
type Buffer interface {
	Size() uint64
	Release()
}

// Backend creates and fills storage buffers.
type Backend interface {
	CreateStorageBuffer(label string, size uint64) (Buffer, error)
	WriteBuffer(buf Buffer, offset uint64, data []byte) error
}

// LightBuffer owns the light storage buffer and re-packs it every frame.
type LightBuffer struct {
	backend Backend
	logger  core.Logger
	label   string
	buf     Buffer
	data    []byte
	header  Header
}

func NewLightBuffer(backend Backend, label string, logger core.Logger) *LightBuffer {
	return &LightBuffer{backend: backend, label: label, logger: core.OrNop(logger)}
}

// Upload packs lights and writes them to the GPU. It reports whether the
// buffer was recreated, in which case bind groups referencing it are stale.
func (b *LightBuffer) Upload(lights []visible.ProcessedLight) (bool, error) {
	b.data, b.header = PackLights(b.data, lights)

	recreated := false
	needed := uint64(len(b.data))
	if b.buf == nil || b.buf.Size() < needed {
		size := uint64(HeaderSize + minRecords*RecordSize)
		if b.buf != nil {
			size = max(size, 2*b.buf.Size())
		}
		size = max(size, needed)

		buf, err := b.backend.CreateStorageBuffer(b.label, size)
		if err != nil {
			return false, fmt.Errorf("create %s (%d bytes): %w", b.label, size, err)
		}
		if b.buf != nil {
			b.buf.Release()
		}
		b.logger.Debugf("%s resized to %d bytes", b.label, size)
		b.buf = buf
		recreated = true
	}

	if err := b.backend.WriteBuffer(b.buf, 0, b.data); err != nil {
		return recreated, fmt.Errorf("write %s: %w", b.label, err)
	}
	return recreated, nil
}

func (b *LightBuffer) Header() Header { return b.header }

// Bytes returns the data of the last upload.
func (b *LightBuffer) Bytes() []byte { return b.data }

func (b *LightBuffer) Buffer() Buffer { return b.buf }

func (b *LightBuffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
	b.data = nil
}

// WGPUBackend creates buffers on a WebGPU device.
type WGPUBackend struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

func NewWGPUBackend(device *wgpu.Device) *WGPUBackend {
	return &WGPUBackend{Device: device, Queue: device.GetQueue()}
}

type wgpuBuffer struct {
	*wgpu.Buffer
}

func (w wgpuBuffer) Size() uint64 { return w.GetSize() }

func (w *WGPUBackend) CreateStorageBuffer(label string, size uint64) (Buffer, error) {
	if size%4 != 0 {
		size += 4 - size%4
	}
	buf, err := w.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	return wgpuBuffer{buf}, nil
}

func (w *WGPUBackend) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	wb, ok := buf.(wgpuBuffer)
	if !ok {
		return fmt.Errorf("gpu: buffer %T was not created by this backend", buf)
	}
	return w.Queue.WriteBuffer(wb.Buffer, offset, data)
}

// Raw returns the wgpu buffer behind buf, or nil.
func Raw(buf Buffer) *wgpu.Buffer {
	if wb, ok := buf.(wgpuBuffer); ok {
		return wb.Buffer
	}
	return nil
}
