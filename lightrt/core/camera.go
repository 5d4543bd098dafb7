package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the viewer a frame is prepared for.
type Camera struct {
	Position   mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Width      int
	Height     int
}

// NewPerspectiveCamera builds a right-handed, Y-up perspective camera.
func NewPerspectiveCamera(eye, target mgl32.Vec3, fovYDeg float32, width, height int, near, far float32) Camera {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return Camera{
		Position:   eye,
		View:       mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0}),
		Projection: mgl32.Perspective(mgl32.DegToRad(fovYDeg), aspect, near, far),
		Width:      width,
		Height:     height,
	}
}

func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

func (c Camera) PixelCount() int {
	if c.Width <= 0 || c.Height <= 0 {
		return 0
	}
	return c.Width * c.Height
}

// DistanceTo returns the distance from the camera to p.
func (c Camera) DistanceTo(p mgl32.Vec3) float32 {
	return p.Sub(c.Position).Len()
}
