package terrain

import "math"

// BuildMesh triangulates the heightmap: each cell of four neighboring samples
// becomes triangles (00, 10, 11) and (00, 11, 01), where the first index runs
// along x. UVs span [0,1] over the whole map.
func BuildMesh(h *Heightmap, s Scale) *Mesh {
	cellsX := h.Width - 1
	cellsZ := h.Depth - 1
	vertices := make([]float32, 0, cellsX*cellsZ*6*FloatsPerVertex)

	bounds := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	pack := func(x, z int) {
		px := float32(x) * s.Horizontal
		py := float32(h.At(x, z)) * s.Vertical
		pz := float32(z) * s.Horizontal
		u := float32(x) / float32(cellsX)
		v := float32(z) / float32(cellsZ)
		vertices = append(vertices, px, py, pz, u, v)
		updateBounds(&bounds, [3]float32{px, py + s.Offset, pz})
	}

	for z := 0; z < cellsZ; z++ {
		for x := 0; x < cellsX; x++ {
			pack(x, z)
			pack(x+1, z)
			pack(x+1, z+1)

			pack(x, z)
			pack(x+1, z+1)
			pack(x, z+1)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Offset:   s.Offset,
		Bounds:   bounds,
	}
}

// updateBounds expands bounds to include point p.
func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
