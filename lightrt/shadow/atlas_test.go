package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/lightloop/config"
	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/registry"
	"github.com/gekko3d/lightloop/lightrt/visible"
)

func testSettings() config.ShadowSettings {
	return config.ShadowSettings{
		AtlasSize:           1024,
		MaxShadowRequests:   8,
		PunctualResolution:  512,
		AreaResolution:      256,
		DirectionalCascades: 2,
		CascadeResolution:   512,
	}
}

func request(id int, gpuType core.GPULightType, distance float32) visible.ShadowRequest {
	return visible.ShadowRequest{
		VisibleIndex:       id,
		Entity:             registry.Record{DataIndex: id, SourceID: 100 + id},
		GPUType:            gpuType,
		Flags:              core.WillRenderShadowMap,
		DistanceToCamera:   distance,
		ShadowDimmer:       1,
		ShadowFadeDistance: 100,
	}
}

func TestAtlasReservesUntilFull(t *testing.T) {
	a := NewAtlas(testSettings(), nil)
	assert.Equal(t, int64(1024*1024), a.Capacity())

	steps := []struct {
		name   string
		req    visible.ShadowRequest
		want   bool
		texels int64
	}{
		{"directional cascades", request(0, core.GPULightDirectional, 1e4), true, 2 * 512 * 512},
		{"near spot", request(1, core.GPULightSpot, 10), true, 512 * 512},
		{"near point needs six faces", request(2, core.GPULightPoint, 10), false, 0},
		{"far point still too large", request(3, core.GPULightPoint, 80), false, 0},
		{"rectangle uses area resolution", request(4, core.GPULightRectangle, 10), true, 256 * 256},
		{"far spot is halved", request(5, core.GPULightProjectorBox, 80), true, 256 * 256},
	}

	var used int64
	for _, s := range steps {
		assert.Equal(t, s.want, a.TryReserve(s.req), s.name)
		used += s.texels
		assert.Equal(t, used, a.Used(), s.name)
	}

	assert.Equal(t, 2, a.Denied())
	res := a.Reservations()
	assert.Len(t, res, 4)
	assert.Equal(t, 2, res[0].Faces)
	assert.Equal(t, 101, res[1].SourceID)
	assert.Equal(t, 256, res[3].Resolution)
	assert.InDelta(t, float64(used)/float64(1024*1024), a.Occupancy(), 1e-9)

	a.Reset()
	assert.Zero(t, a.Used())
	assert.Zero(t, a.Denied())
	assert.Empty(t, a.Reservations())
	assert.True(t, a.TryReserve(request(2, core.GPULightPoint, 80)), "a far point fits an empty atlas")
}

func TestAtlasRequestCap(t *testing.T) {
	s := testSettings()
	s.MaxShadowRequests = 2
	a := NewAtlas(s, core.NopLogger())

	assert.True(t, a.TryReserve(request(0, core.GPULightSpot, 90)))
	assert.True(t, a.TryReserve(request(1, core.GPULightSpot, 90)))
	assert.False(t, a.TryReserve(request(2, core.GPULightSpot, 90)))
	assert.Equal(t, 1, a.Denied())
}

func TestAtlasResolutionFloor(t *testing.T) {
	s := testSettings()
	s.PunctualResolution = 100
	a := NewAtlas(s, nil)

	assert.True(t, a.TryReserve(request(0, core.GPULightSpot, 90)))
	assert.Equal(t, minTileResolution, a.Reservations()[0].Resolution)

	req := request(1, core.GPULightSpot, 1e4)
	req.ShadowFadeDistance = 0
	assert.True(t, a.TryReserve(req))
	assert.Equal(t, 100, a.Reservations()[1].Resolution, "no fade distance, no scaling")
}
