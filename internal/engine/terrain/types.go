// Package terrain builds the static terrain mesh from a grayscale heightmap.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// FloatsPerVertex is position(3) + uv(2).
const FloatsPerVertex = 5

// Heightmap is a grid of 8-bit samples, row-major along z.
type Heightmap struct {
	Width   int // samples along x
	Depth   int // samples along z
	Samples []uint8
}

// At returns the sample at column x, row z.
func (h *Heightmap) At(x, z int) uint8 {
	return h.Samples[z*h.Width+x]
}

// Scale maps heightmap samples to world space.
type Scale struct {
	Horizontal float32 // world units per sample
	Vertical   float32 // world units per sample value
	Offset     float32 // world y of sample value 0
}

// DefaultScale returns the scene scale for a given water level. The terrain
// sits slightly below the water so low samples are submerged.
func DefaultScale(waterLevel float32) Scale {
	return Scale{
		Horizontal: 0.05,
		Vertical:   5.0 / 255.0,
		Offset:     waterLevel - 1.4,
	}
}

// Mesh holds terrain geometry ready for GPU upload.
type Mesh struct {
	Vertices []float32 // interleaved, FloatsPerVertex per vertex, offset not applied
	Offset   float32   // applied by the model transform
	Bounds   Bounds    // world space, offset included
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// Model returns the model transform that lifts the mesh to its world height.
func (m *Mesh) Model() mgl32.Mat4 {
	return mgl32.Translate3D(0, m.Offset, 0)
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}
