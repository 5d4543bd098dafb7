package visible

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightloop/config"
	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/registry"
)

// CullingResults supplies the visible lights of one frame.
type CullingResults interface {
	VisibleLights() []core.VisibleLight
}

// ShadowManager reserves shadow atlas space. It is only called from the
// goroutine running PrepareLightsForGPU.
type ShadowManager interface {
	TryReserve(req ShadowRequest) bool
}

type DebugLightFilter interface {
	IsEnabledFor(gpuType core.GPULightType, spotShape core.SpotShape) bool
}

type AOVFilter interface {
	IsEnabled(obj any) bool
}

// ShadowRequest carries what a shadow manager needs to size a reservation.
type ShadowRequest struct {
	VisibleIndex       int
	Entity             registry.Record
	Light              core.VisibleLight
	LightType          core.LightType
	GPUType            core.GPULightType
	Flags              core.ShadowMapFlags
	Position           mgl32.Vec3
	DistanceToCamera   float32
	ShadowDimmer       float32
	ShadowFadeDistance float32
	AdditionalData     any
}

// Frame is everything PrepareLightsForGPU reads for one camera.
type Frame struct {
	Camera    core.Camera
	Culling   CullingResults
	LightLoop config.LightLoopSettings
	Features  config.FrameSettings
	Debug     config.DebugSettings

	// Optional collaborators. A nil Shadows clears every shadow flag.
	Shadows     ShadowManager
	DebugFilter DebugLightFilter
	AOV         AOVFilter
}
