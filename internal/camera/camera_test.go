package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFrontVectorAxes(t *testing.T) {
	c := NewFly()
	c.Yaw, c.Pitch = 0, 0
	assert.True(t, c.GetFrontVector().ApproxEqual(mgl32.Vec3{0, 0, -1}))
	assert.True(t, c.GetRightVector().ApproxEqual(mgl32.Vec3{1, 0, 0}))

	c.Yaw = 90
	assert.True(t, c.GetFrontVector().ApproxEqual(mgl32.Vec3{-1, 0, 0}))

	c.Yaw, c.Pitch = 0, 89
	assert.Greater(t, c.GetFrontVector().Y(), float32(0.99))
}

func TestDefaultPoseLooksTowardOrigin(t *testing.T) {
	c := NewFly()
	toOrigin := c.Position.Mul(-1).Normalize()
	assert.Greater(t, c.GetFrontVector().Dot(toOrigin), float32(0.9))
	assert.InDelta(t, 1.0, c.GetFrontVector().Len(), 1e-6)
}

func TestMove(t *testing.T) {
	c := NewFly()
	c.Position = mgl32.Vec3{}
	c.Yaw, c.Pitch = 0, 0
	c.MoveSpeed = 2

	c.Move(Movement{Forward: true}, 0.5)
	assert.True(t, c.Position.ApproxEqual(mgl32.Vec3{0, 0, -1}), "%v", c.Position)

	c.Move(Movement{Right: true, Up: true}, 1)
	assert.True(t, c.Position.ApproxEqual(mgl32.Vec3{2, 2, -1}), "%v", c.Position)

	c.Move(Movement{Forward: true, Backward: true, Left: true, Right: true}, 1)
	assert.True(t, c.Position.ApproxEqual(mgl32.Vec3{2, 2, -1}), "%v", c.Position)
}

func TestRotateOnlyWhileDragging(t *testing.T) {
	c := NewFly()
	c.HandleMouseMovement(100, 100)
	assert.Equal(t, float32(DefaultYaw), c.Yaw)

	c.BeginRotate(100, 100)
	c.HandleMouseMovement(110, 95)
	assert.InDelta(t, DefaultYaw-4, c.Yaw, 1e-4)
	assert.InDelta(t, DefaultPitch+2, c.Pitch, 1e-4)

	c.EndRotate()
	c.HandleMouseMovement(500, 500)
	assert.InDelta(t, DefaultYaw-4, c.Yaw, 1e-4)
}

func TestRotateWrapsYawAndClampsPitch(t *testing.T) {
	c := NewFly()
	c.BeginRotate(0, 0)
	c.HandleMouseMovement(200, 0) // yaw 40 - 80
	assert.InDelta(t, 320, c.Yaw, 1e-3)

	c.HandleMouseMovement(200, -1000)
	assert.Equal(t, float32(89), c.Pitch)
	c.HandleMouseMovement(200, 1000)
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestProjection(t *testing.T) {
	p := NewProjection(800, 400, 45, 0.1, 100)
	assert.Equal(t, float32(2), p.AspectRatio)

	p.SetViewport(0, 0)
	assert.Equal(t, float32(2), p.AspectRatio)

	p.SetViewport(300, 300)
	m := p.GetProjectionMatrix()
	assert.InDelta(t, m.At(0, 0), m.At(1, 1), 1e-6)
}

func lookDownNegZ() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return NewFrustum(proj.Mul4(view))
}

func TestFrustumSpheres(t *testing.T) {
	f := lookDownNegZ()

	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, -10}, 1))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 10}, 1), "behind")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 1), "past far plane")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{20, 0, -10}, 1), "right of the frustum")
	assert.True(t, f.ContainsSphere(mgl32.Vec3{10.5, 0, -10}, 1), "straddles the right plane")
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := lookDownNegZ()
	for i, p := range f {
		n := mgl32.Vec3{p.A, p.B, p.C}
		assert.InDelta(t, 1.0, n.Len(), 1e-5, "plane %d", i)
	}
	// near plane sits at z = -0.1 facing -Z
	assert.InDelta(t, 9.9, f[4].Distance(mgl32.Vec3{0, 0, -10}), 1e-3)
}

func TestFrustumBoxes(t *testing.T) {
	f := lookDownNegZ()

	assert.True(t, f.ContainsAABB(mgl32.Vec3{-1, -1, -11}, mgl32.Vec3{1, 1, -9}))
	assert.False(t, f.ContainsAABB(mgl32.Vec3{5, -1, -3}, mgl32.Vec3{6, 1, -2}))
	assert.True(t, f.ContainsAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), "contains the eye")
}
