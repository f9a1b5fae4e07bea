package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default pose looks down at the origin from above and to the side.
var (
	DefaultPosition = mgl32.Vec3{3, 6, 6}
	DefaultUp       = mgl32.Vec3{0, 1, 0}
)

const (
	DefaultYaw         = 40.0
	DefaultPitch       = -40.0
	DefaultMoveSpeed   = 3.0 // units per second
	DefaultRotateSpeed = 0.4 // degrees per pixel
)

// Movement is the set of movement keys held this frame
type Movement struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
}

// Fly is a free-flying camera. Yaw rotates around +Y and pitch around the
// camera's right axis; both in degrees, with yaw 0 and pitch 0 looking down -Z.
type Fly struct {
	Position    mgl32.Vec3
	Up          mgl32.Vec3
	Yaw         float32
	Pitch       float32
	MoveSpeed   float32
	RotateSpeed float32

	rotating     bool
	lastX, lastY float64
}

func NewFly() *Fly {
	c := &Fly{MoveSpeed: DefaultMoveSpeed, RotateSpeed: DefaultRotateSpeed}
	c.Reset()
	return c
}

// Reset restores the default pose; speeds are kept.
func (c *Fly) Reset() {
	c.Position = DefaultPosition
	c.Up = DefaultUp
	c.Yaw = DefaultYaw
	c.Pitch = DefaultPitch
	c.rotating = false
}

// GetFrontVector returns the unit view direction: RotY(yaw) * RotX(pitch) * -Z.
func (c *Fly) GetFrontVector() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(-math.Cos(p) * math.Sin(y)),
		float32(math.Sin(p)),
		float32(-math.Cos(p) * math.Cos(y)),
	}
}

// GetRightVector returns the unit vector to the camera's right.
func (c *Fly) GetRightVector() mgl32.Vec3 {
	return c.Up.Cross(c.GetFrontVector()).Normalize().Mul(-1)
}

func (c *Fly) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.GetFrontVector()), c.Up)
}

// Move translates the camera for dt seconds of held movement keys.
func (c *Fly) Move(m Movement, dt float64) {
	step := c.MoveSpeed * float32(dt)
	front, right := c.GetFrontVector(), c.GetRightVector()
	var d mgl32.Vec3
	if m.Forward {
		d = d.Add(front)
	}
	if m.Backward {
		d = d.Sub(front)
	}
	if m.Right {
		d = d.Add(right)
	}
	if m.Left {
		d = d.Sub(right)
	}
	if m.Up {
		d = d.Add(c.Up)
	}
	if m.Down {
		d = d.Sub(c.Up)
	}
	c.Position = c.Position.Add(d.Mul(step))
}

// BeginRotate starts a mouse drag at the given cursor position.
func (c *Fly) BeginRotate(x, y float64) {
	c.rotating = true
	c.lastX, c.lastY = x, y
}

func (c *Fly) EndRotate() {
	c.rotating = false
}

func (c *Fly) Rotating() bool {
	return c.rotating
}

// HandleMouseMovement turns the camera while a drag is in progress.
func (c *Fly) HandleMouseMovement(x, y float64) {
	if !c.rotating {
		return
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y

	c.Yaw -= dx * c.RotateSpeed
	c.Pitch -= dy * c.RotateSpeed

	// Wrap yaw and constrain pitch
	c.Yaw = float32(math.Mod(float64(c.Yaw), 360))
	if c.Yaw < 0 {
		c.Yaw += 360
	}
	c.Pitch = mgl32.Clamp(c.Pitch, -89, 89)
}
