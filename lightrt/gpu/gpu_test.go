package gpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/registry"
	"github.com/gekko3d/lightloop/lightrt/visible"
)

type fakeBuffer struct {
	size     uint64
	data     []byte
	released bool
}

func (b *fakeBuffer) Size() uint64 { return b.size }
func (b *fakeBuffer) Release()     { b.released = true }

type fakeBackend struct {
	created  []*fakeBuffer
	writes   int
	writeErr error
}

func (f *fakeBackend) CreateStorageBuffer(label string, size uint64) (Buffer, error) {
	b := &fakeBuffer{size: size}
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBackend) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	fb := buf.(*fakeBuffer)
	if offset+uint64(len(data)) > fb.size {
		return errors.New("write out of range")
	}
	fb.data = append(fb.data[:0], data...)
	f.writes++
	return nil
}

func light(id int, lightType core.LightType, category core.LightCategory, gpuType core.GPULightType) visible.ProcessedLight {
	return visible.ProcessedLight{
		VisibleIndex:           id,
		Entity:                 registry.Record{DataIndex: id, SourceID: 1000 + id},
		LightType:              lightType,
		Category:               category,
		GPUType:                gpuType,
		Volume:                 core.VolumeSphere,
		Position:               mgl32.Vec3{float32(id), 2, -3},
		DistanceToCamera:       12.5,
		DistanceFade:           0.75,
		VolumetricDistanceFade: 0.5,
		ShadowFlags:            core.WillRenderShadowMap,
		SortKey:                uint32(id) + 7,
	}
}

func TestPackLightsLayout(t *testing.T) {
	lights := []visible.ProcessedLight{
		light(0, core.LightTypeDirectional, core.CategoryPunctual, core.GPULightDirectional),
		light(1, core.LightTypePoint, core.CategoryPunctual, core.GPULightPoint),
		light(2, core.LightTypeArea, core.CategoryArea, core.GPULightRectangle),
		light(3, core.LightTypeSpot, core.CategoryPunctual, core.GPULightSpot),
	}
	lights[2].IsBakedShadowMask = true
	lights[3].Entity = registry.InvalidRecord // removed by the debug filter

	data, h := PackLights(nil, lights)
	assert.Equal(t, Header{Count: 3, Directional: 1, Punctual: 1, Area: 1}, h)
	require.Len(t, data, HeaderSize+3*RecordSize)

	read, ok := ReadHeader(data)
	require.True(t, ok)
	assert.Equal(t, h, read)

	le := binary.LittleEndian
	f32 := func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) }

	rec := data[HeaderSize+2*RecordSize:]
	assert.Equal(t, float32(2), f32(rec[0:]))
	assert.Equal(t, float32(2), f32(rec[4:]))
	assert.Equal(t, float32(-3), f32(rec[8:]))
	assert.Equal(t, float32(0.75), f32(rec[12:]))
	assert.Equal(t, uint32(core.GPULightRectangle), le.Uint32(rec[16:]))
	assert.Equal(t, uint32(core.VolumeSphere), le.Uint32(rec[20:]))
	assert.Equal(t, uint32(core.WillRenderShadowMap), le.Uint32(rec[24:]))
	assert.Equal(t, FlagBakedShadowMask|FlagArea, le.Uint32(rec[28:]))
	assert.Equal(t, float32(0.5), f32(rec[32:]))
	assert.Equal(t, float32(12.5), f32(rec[36:]))
	assert.Equal(t, uint32(1002), le.Uint32(rec[40:]))
	assert.Equal(t, uint32(9), le.Uint32(rec[44:]))

	_, ok = ReadHeader(data[:8])
	assert.False(t, ok)
}

func TestPackLightsReusesDestination(t *testing.T) {
	lights := []visible.ProcessedLight{light(0, core.LightTypePoint, core.CategoryPunctual, core.GPULightPoint)}
	data, _ := PackLights(make([]byte, 0, 1024), lights)
	again, h := PackLights(data, nil)
	assert.Len(t, again, HeaderSize)
	assert.Equal(t, Header{}, h)
	assert.Equal(t, cap(data), cap(again))
}

func TestLightBufferGrows(t *testing.T) {
	backend := &fakeBackend{}
	lb := NewLightBuffer(backend, "LightsBuf", nil)

	recreated, err := lb.Upload(nil)
	require.NoError(t, err)
	assert.True(t, recreated)
	require.Len(t, backend.created, 1)
	assert.Equal(t, uint64(HeaderSize+minRecords*RecordSize), backend.created[0].size)

	many := make([]visible.ProcessedLight, 100)
	for i := range many {
		many[i] = light(i, core.LightTypePoint, core.CategoryPunctual, core.GPULightPoint)
	}
	recreated, err = lb.Upload(many)
	require.NoError(t, err)
	assert.True(t, recreated)
	require.Len(t, backend.created, 2)
	assert.True(t, backend.created[0].released)
	assert.Equal(t, 2*backend.created[0].size, backend.created[1].size)
	assert.Equal(t, uint32(100), lb.Header().Count)
	assert.Equal(t, lb.Bytes(), backend.created[1].data)

	recreated, err = lb.Upload(many[:10])
	require.NoError(t, err)
	assert.False(t, recreated)
	assert.Equal(t, 3, backend.writes)

	lb.Release()
	assert.True(t, backend.created[1].released)
	assert.Nil(t, lb.Buffer())
}

func TestLightBufferWriteError(t *testing.T) {
	backend := &fakeBackend{writeErr: errors.New("device lost")}
	lb := NewLightBuffer(backend, "LightsBuf", core.NopLogger())

	_, err := lb.Upload(nil)
	assert.ErrorIs(t, err, backend.writeErr)
	assert.Contains(t, err.Error(), "LightsBuf")
}

func TestRawIgnoresForeignBuffers(t *testing.T) {
	assert.Nil(t, Raw(&fakeBuffer{}))
}
