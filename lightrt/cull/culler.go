// Package cull is a reference culling provider: it tests light bounds against
// the camera frustum and reports a projected screen rectangle for each light
// that survives.
package cull

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightloop/lightrt/core"
)

var (
	ErrDuplicateSource = errors.New("cull: light source already added")
	ErrNoTransform     = errors.New("cull: light has no transform")
)

// fullScreen is the rectangle reported for lights that cover the whole viewport.
var fullScreen = core.ScreenRect{X: 0, Y: 0, Width: 1, Height: 1}

// Light is the culling view of a scene light.
type Light struct {
	SourceID  int
	Kind      core.LightKind
	Range     float32
	Shadows   core.ShadowMode
	Baking    core.BakingOutput
	Transform core.TransformSource
}

// Culler keeps the scene's lights and produces the visible set for a camera.
type Culler struct {
	lights  []Light
	index   map[int]int
	results Results
}

func NewCuller() *Culler {
	return &Culler{index: make(map[int]int)}
}

func (c *Culler) Add(l Light) error {
	if l.Transform == nil {
		return fmt.Errorf("%w: source %d", ErrNoTransform, l.SourceID)
	}
	if _, ok := c.index[l.SourceID]; ok {
		return fmt.Errorf("%w: source %d", ErrDuplicateSource, l.SourceID)
	}
	c.index[l.SourceID] = len(c.lights)
	c.lights = append(c.lights, l)
	return nil
}

// Remove drops a light by swapping the last light into its place.
func (c *Culler) Remove(sourceID int) bool {
	i, ok := c.index[sourceID]
	if !ok {
		return false
	}
	last := len(c.lights) - 1
	if i != last {
		c.lights[i] = c.lights[last]
		c.index[c.lights[i].SourceID] = i
	}
	c.lights[last] = Light{}
	c.lights = c.lights[:last]
	delete(c.index, sourceID)
	return true
}

func (c *Culler) Len() int { return len(c.lights) }

// Cull returns the lights visible from cam. The returned results are reused by
// the next call.
func (c *Culler) Cull(cam core.Camera) *Results {
	vp := cam.ViewProjection()
	frustum := ExtractFrustum(vp)

	r := &c.results
	r.Lights = r.Lights[:0]
	r.Tested = len(c.lights)
	r.Culled = 0
	for _, l := range c.lights {
		rect, ok := l.screenRect(frustum, vp)
		if !ok {
			r.Culled++
			continue
		}
		r.Lights = append(r.Lights, core.VisibleLight{
			SourceID:   l.SourceID,
			Kind:       l.Kind,
			ScreenRect: rect,
			Shadows:    l.Shadows,
			Baking:     l.Baking,
		})
	}
	return r
}

func (l Light) screenRect(f Frustum, vp mgl32.Mat4) (core.ScreenRect, bool) {
	if l.Kind == core.LightKindDirectional {
		return fullScreen, true
	}
	center := l.Transform.WorldPosition()
	extent := mgl32.Vec3{l.Range, l.Range, l.Range}
	boxMin, boxMax := center.Sub(extent), center.Add(extent)
	if !f.ContainsSphere(center, l.Range) || !f.ContainsAABB(boxMin, boxMax) {
		return core.ScreenRect{}, false
	}
	return ProjectAABB(boxMin, boxMax, vp), true
}

// ProjectAABB returns the viewport-normalized rectangle covered by the box,
// origin top-left. A box reaching behind the camera covers the whole viewport.
func ProjectAABB(boxMin, boxMax mgl32.Vec3, vp mgl32.Mat4) core.ScreenRect {
	lo := mgl32.Vec2{1, 1}
	hi := mgl32.Vec2{-1, -1}
	for corner := 0; corner < 8; corner++ {
		p := boxMin
		for k := 0; k < 3; k++ {
			if corner&(1<<k) != 0 {
				p[k] = boxMax[k]
			}
		}
		clip := vp.Mul4x1(p.Vec4(1))
		if clip.W() <= 0 {
			return fullScreen
		}
		ndc := mgl32.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
		for k := 0; k < 2; k++ {
			lo[k] = mgl32.Clamp(min(lo[k], ndc[k]), -1, 1)
			hi[k] = mgl32.Clamp(max(hi[k], ndc[k]), -1, 1)
		}
	}
	if hi[0] <= lo[0] || hi[1] <= lo[1] {
		return core.ScreenRect{}
	}
	return core.ScreenRect{
		X:      (lo[0] + 1) / 2,
		Y:      (1 - hi[1]) / 2,
		Width:  (hi[0] - lo[0]) / 2,
		Height: (hi[1] - lo[1]) / 2,
	}
}

// Results is the visible set of one Cull call.
type Results struct {
	Lights []core.VisibleLight
	Tested int
	Culled int
}

func (r *Results) VisibleLights() []core.VisibleLight { return r.Lights }
