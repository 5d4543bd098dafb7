package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransformWorldPosition(t *testing.T) {
	root := NewTransformAt(mgl32.Vec3{10, 0, 0})
	root.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	root.Scale = mgl32.Vec3{2, 2, 2}

	child := NewTransformAt(mgl32.Vec3{1, 0, 0})
	child.Parent = root

	// Rotating +X by 90 degrees about +Y gives -Z; scaled by 2 and offset by the root.
	pos := child.WorldPosition()
	assert.InDelta(t, 10, pos.X(), 1e-4)
	assert.InDelta(t, 0, pos.Y(), 1e-4)
	assert.InDelta(t, -2, pos.Z(), 1e-4)

	assert.Equal(t, mgl32.Vec3{10, 0, 0}, root.WorldPosition())
}

func TestTransformForward(t *testing.T) {
	tr := NewTransform()
	f := tr.Forward()
	assert.InDelta(t, -1, f.Z(), 1e-5)

	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(180), mgl32.Vec3{0, 1, 0})
	f = tr.Forward()
	assert.InDelta(t, 1, f.Z(), 1e-5)
}

func TestCameraPixelCount(t *testing.T) {
	cam := NewPerspectiveCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 60, 1920, 1080, 0.1, 100)
	assert.Equal(t, 1920*1080, cam.PixelCount())
	assert.InDelta(t, 5, cam.DistanceTo(mgl32.Vec3{3, 4, 0}), 1e-5)

	assert.Equal(t, 0, Camera{Width: 0, Height: 10}.PixelCount())
}
