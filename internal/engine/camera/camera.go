// Package camera provides the free-flying scene camera.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a movement request in camera space.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// FlyCamera is an Euler-angle camera with inertial movement: holding a key
// accelerates along the requested direction, releasing it lets the camera
// glide to a stop along the last direction.
type FlyCamera struct {
	Position mgl32.Vec3
	WorldUp  mgl32.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	// Vertical field of view in degrees
	Zoom float32

	// Constraints
	MinZoom  float32
	MaxZoom  float32
	MaxPitch float32

	// Movement
	MaxSpeed     float32
	Acceleration float32
	Deceleration float32

	// Sensitivity
	MouseSensitivity float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3

	input   mgl32.Vec3 // directions requested this frame
	moveDir mgl32.Vec3 // last non-zero movement direction
	speed   float32
}

// NewFlyCamera creates a camera at the default start pose.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Position:         mgl32.Vec3{-3, 3, -3},
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              45,
		Pitch:            -10,
		Zoom:             45,
		MinZoom:          1,
		MaxZoom:          45,
		MaxPitch:         89,
		MaxSpeed:         10,
		Acceleration:     3,
		Deceleration:     5,
		MouseSensitivity: 0.1,
	}
	c.updateVectors()
	return c
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *FlyCamera) Up() mgl32.Vec3 { return c.up }

// Speed returns the current movement speed.
func (c *FlyCamera) Speed() float32 { return c.speed }

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// HandleMouse turns the camera by a mouse motion delta in pixels.
// Positive dy looks up.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	// Clamp pitch
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
	c.updateVectors()
}

// HandleZoom narrows the field of view on positive wheel deltas.
func (c *FlyCamera) HandleZoom(delta float32) {
	c.Zoom -= delta
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	if c.Zoom > c.MaxZoom {
		c.Zoom = c.MaxZoom
	}
}

// HandleMovement records a held movement key for the next Update.
func (c *FlyCamera) HandleMovement(d Direction) {
	switch d {
	case Forward:
		c.input = c.input.Add(c.front)
	case Backward:
		c.input = c.input.Sub(c.front)
	case Left:
		c.input = c.input.Sub(c.right)
	case Right:
		c.input = c.input.Add(c.right)
	}
}

// Update integrates movement over dt and clears the frame's input.
func (c *FlyCamera) Update(dt float32) {
	if c.input.Len() > 0 {
		c.moveDir = c.input.Normalize()
		c.speed = min(c.speed+c.Acceleration*dt, c.MaxSpeed)
	} else {
		c.speed = max(c.speed-c.Deceleration*dt, 0)
	}
	c.Position = c.Position.Add(c.moveDir.Mul(c.speed * dt))
	c.input = mgl32.Vec3{}
}

func (c *FlyCamera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
