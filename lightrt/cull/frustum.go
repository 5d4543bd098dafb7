package cull

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum holds six planes in Left, Right, Bottom, Top, Near, Far order.
// Each plane is Ax + By + Cz + D = 0 with the normal pointing inside.
type Frustum [6]mgl32.Vec4

// ExtractFrustum extracts the frustum planes of a view-projection matrix
// (OpenGL clip space, z in -1..1).
func ExtractFrustum(vp mgl32.Mat4) Frustum {
	var f Frustum
	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	w := row(3)
	for axis := 0; axis < 3; axis++ {
		r := row(axis)
		f[2*axis] = w.Add(r)
		f[2*axis+1] = w.Sub(r)
	}

	for i := range f {
		p := f[i]
		length := float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
		if length > 0 {
			f[i] = p.Mul(1 / length)
		}
	}
	return f
}

// ContainsAABB reports whether the box [boxMin, boxMax] is at least partly inside.
// The test is conservative: boxes near a frustum corner may pass.
func (f Frustum) ContainsAABB(boxMin, boxMax mgl32.Vec3) bool {
	for _, plane := range f {
		// The corner furthest along the normal; if it is outside, the whole box is.
		var p mgl32.Vec3
		for k := 0; k < 3; k++ {
			if plane[k] > 0 {
				p[k] = boxMax[k]
			} else {
				p[k] = boxMin[k]
			}
		}
		if plane[0]*p[0]+plane[1]*p[1]+plane[2]*p[2]+plane[3] < 0 {
			return false
		}
	}
	return true
}

// ContainsSphere reports whether a sphere is at least partly inside.
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f {
		if plane[0]*center[0]+plane[1]*center[1]+plane[2]*center[2]+plane[3] < -radius {
			return false
		}
	}
	return true
}
