// Package water generates the animated water surface mesh.
package water

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is position(3) + normal(3) + uv(2).
const FloatsPerVertex = 8

// VerticesPerCell is two triangles per grid cell.
const VerticesPerCell = 6

// DefaultGrid is the default number of cells along each axis.
const DefaultGrid = 100

// FieldOptions configures a Field.
type FieldOptions struct {
	Grid         int
	Displacement Displacement
	Params       Params
}

// Field is an N×N grid of quads regenerated every frame into a fixed buffer.
type Field struct {
	grid     int
	step     float32
	displace Displacement
	params   Params
	vertices []float32
}

// NewField allocates the vertex buffer once for the lifetime of the field.
func NewField(opts FieldOptions) *Field {
	if opts.Grid < 1 {
		opts.Grid = DefaultGrid
	}
	if opts.Displacement == nil {
		opts.Displacement = Gerstner
	}
	return &Field{
		grid:     opts.Grid,
		step:     2 / float32(opts.Grid),
		displace: opts.Displacement,
		params:   opts.Params,
		vertices: make([]float32, opts.Grid*opts.Grid*VerticesPerCell*FloatsPerVertex),
	}
}

// Grid returns the number of cells along each axis.
func (f *Field) Grid() int { return f.grid }

// Step returns the cell size in normalized grid units.
func (f *Field) Step() float32 { return f.step }

// VertexCount returns the number of vertices in the buffer.
func (f *Field) VertexCount() int { return f.grid * f.grid * VerticesPerCell }

// Vertices returns the buffer written by the last Generate call.
func (f *Field) Vertices() []float32 { return f.vertices }

// Params returns the current wave parameters.
func (f *Field) Params() Params { return f.params }

// SetAmplitude updates the wave height used by subsequent Generate calls.
func (f *Field) SetAmplitude(a float32) { f.params.Amplitude = a }

// Generate rewrites the buffer in place for time t and returns it.
func (f *Field) Generate(t float32) []float32 {
	step := f.step
	for i := 0; i < f.grid; i++ {
		z0 := -1 + float32(i)*step
		z1 := z0 + step

		for j := 0; j < f.grid; j++ {
			x0 := -1 + float32(j)*step
			x1 := x0 + step

			v00 := f.displace(x0, z0, t, f.params)
			v10 := f.displace(x1, z0, t, f.params)
			v11 := f.displace(x1, z1, t, f.params)
			v01 := f.displace(x0, z1, t, f.params)

			n00 := f.normal(x0, z0, t)
			n10 := f.normal(x1, z0, t)
			n11 := f.normal(x1, z1, t)
			n01 := f.normal(x0, z1, t)

			base := (i*f.grid + j) * VerticesPerCell * FloatsPerVertex

			// (00, 10, 11)
			f.pack(base+0*FloatsPerVertex, v00, n00, 0, 0)
			f.pack(base+1*FloatsPerVertex, v10, n10, 1, 0)
			f.pack(base+2*FloatsPerVertex, v11, n11, 1, 1)

			// (00, 11, 01)
			f.pack(base+3*FloatsPerVertex, v00, n00, 0, 0)
			f.pack(base+4*FloatsPerVertex, v11, n11, 1, 1)
			f.pack(base+5*FloatsPerVertex, v01, n01, 0, 1)
		}
	}
	return f.vertices
}

// normal samples the displacement at ±step on each axis and crosses the
// central-difference tangents.
func (f *Field) normal(x, z, t float32) mgl32.Vec3 {
	h := f.step
	back := f.displace(x, z-h, t, f.params)
	front := f.displace(x, z+h, t, f.params)
	left := f.displace(x-h, z, t, f.params)
	right := f.displace(x+h, z, t, f.params)

	dvdx := right.Sub(left).Mul(1 / (2 * h))
	dvdz := front.Sub(back).Mul(1 / (2 * h))

	n := dvdz.Cross(dvdx)
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

func (f *Field) pack(idx int, pos, n mgl32.Vec3, u, v float32) {
	dst := f.vertices[idx : idx+FloatsPerVertex]
	dst[0], dst[1], dst[2] = pos[0], pos[1], pos[2]
	dst[3], dst[4], dst[5] = n[0], n[1], n[2]
	dst[6], dst[7] = u, v
}
