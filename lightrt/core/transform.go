package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformSource is anything the registry can read a light's world position from.
type TransformSource interface {
	WorldPosition() mgl32.Vec3
}

// Transform is a TRS transform with an optional parent.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Transform
}

func NewTransform() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// NewTransformAt returns an identity-rotation, unit-scale transform at pos.
func NewTransformAt(pos mgl32.Vec3) *Transform {
	t := NewTransform()
	t.Position = pos
	return t
}

// LocalToParent returns T * R * S.
func (t *Transform) LocalToParent() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	m := t.LocalToParent()
	for p := t.Parent; p != nil; p = p.Parent {
		m = p.LocalToParent().Mul4(m)
	}
	return m
}

func (t *Transform) WorldPosition() mgl32.Vec3 {
	if t.Parent == nil {
		return t.Position
	}
	return t.ObjectToWorld().Col(3).Vec3()
}

// Forward is the world-space -Z axis of the transform.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.ObjectToWorld().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}
