package frame

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the +Y axis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// View is a camera placement.
type View struct {
	Eye   mgl32.Vec3
	Front mgl32.Vec3
	Up    mgl32.Vec3
}

// Matrix returns the look-at view matrix.
func (v View) Matrix() mgl32.Mat4 {
	return mgl32.LookAtV(v.Eye, v.Eye.Add(v.Front), v.Up)
}

// Reflect mirrors a view across the horizontal plane y = level.
// The up vector is reset to world up so the mirrored image is not upside down.
func Reflect(v View, level float32) View {
	return View{
		Eye:   mgl32.Vec3{v.Eye[0], 2*level - v.Eye[1], v.Eye[2]},
		Front: mgl32.Vec3{v.Front[0], -v.Front[1], v.Front[2]},
		Up:    WorldUp,
	}
}

// Light is a static directional light with an orthographic shadow frustum.
type Light struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Color    mgl32.Vec3
	Extent   float32 // half-size of the ortho volume
	Near     float32
	Far      float32
}

// Direction returns the normalized direction from the target to the light.
func (l Light) Direction() mgl32.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return WorldUp
	}
	return d.Normalize()
}

// LightSpace returns projection × view for rendering the depth map.
func (l Light) LightSpace() mgl32.Mat4 {
	proj := mgl32.Ortho(-l.Extent, l.Extent, -l.Extent, l.Extent, l.Near, l.Far)
	view := mgl32.LookAtV(l.Position, l.Target, lightUp(l.Direction()))
	return proj.Mul4(view)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the center point of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the half-diagonal.
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Mul(0.5).Len()
}

// FitLightSpace sizes the light frustum to enclose bounds.
// lightDir points toward the light.
func FitLightSpace(lightDir mgl32.Vec3, bounds AABB) mgl32.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()

	// Back the light off far enough to see the whole box.
	distance := radius * 2
	pos := center.Add(lightDir.Mul(distance))

	view := mgl32.LookAtV(pos, center, lightUp(lightDir))

	padding := radius * 0.1
	half := radius + padding
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, distance+radius+padding)
	return proj.Mul4(view)
}

// lightUp avoids an up vector parallel to the light direction.
func lightUp(dir mgl32.Vec3) mgl32.Vec3 {
	if math.Abs(float64(dir[1])) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return WorldUp
}
