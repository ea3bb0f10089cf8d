package water

import (
	"math"
	"testing"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestFieldSize(t *testing.T) {
	for _, grid := range []int{1, 7, 100} {
		f := NewField(FieldOptions{Grid: grid, Params: DefaultParams()})
		want := grid * grid * VerticesPerCell * FloatsPerVertex

		for _, amp := range []float32{0, 0.5, 3} {
			f.SetAmplitude(amp)
			for _, tm := range []float32{0, 1.5, 1000} {
				buf := f.Generate(tm)
				if len(buf) != want {
					t.Fatalf("grid %d: len = %d, want %d", grid, len(buf), want)
				}
				if f.VertexCount() != grid*grid*6 {
					t.Fatalf("grid %d: vertex count = %d", grid, f.VertexCount())
				}
			}
		}
	}
}

func TestGenerateReusesBuffer(t *testing.T) {
	p := DefaultParams()
	p.Amplitude = 0.3
	f := NewField(FieldOptions{Grid: 8, Params: p})

	first := f.Generate(0)
	second := f.Generate(2)
	if &first[0] != &second[0] {
		t.Error("Generate reallocated the vertex buffer")
	}
}

func TestFlatNormals(t *testing.T) {
	for name, d := range displacements {
		t.Run(name, func(t *testing.T) {
			f := NewField(FieldOptions{Grid: 10, Displacement: d, Params: DefaultParams()})
			buf := f.Generate(3.7)

			for v := 0; v < f.VertexCount(); v++ {
				o := v * FloatsPerVertex
				if buf[o+1] != 0 {
					t.Fatalf("vertex %d: y = %f, want 0", v, buf[o+1])
				}
				if !near(buf[o+3], 0) || !near(buf[o+4], 1) || !near(buf[o+5], 0) {
					t.Fatalf("vertex %d: normal = (%f, %f, %f)", v, buf[o+3], buf[o+4], buf[o+5])
				}
			}
		})
	}
}

func TestWindingAndUV(t *testing.T) {
	f := NewField(FieldOptions{Grid: 2, Params: DefaultParams()})
	buf := f.Generate(0)

	// First cell spans x,z in [-1, 0].
	want := [6][4]float32{
		{-1, -1, 0, 0},
		{0, -1, 1, 0},
		{0, 0, 1, 1},
		{-1, -1, 0, 0},
		{0, 0, 1, 1},
		{-1, 0, 0, 1},
	}
	for v, w := range want {
		o := v * FloatsPerVertex
		x, z, u, tv := buf[o], buf[o+2], buf[o+6], buf[o+7]
		if !near(x, w[0]) || !near(z, w[1]) || u != w[2] || tv != w[3] {
			t.Errorf("vertex %d = (x %f, z %f, uv %f,%f), want %v", v, x, z, u, tv, w)
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	p := DefaultParams()
	p.Amplitude = 0.8
	f := NewField(FieldOptions{Grid: 16, Params: p})
	buf := f.Generate(1.25)

	for v := 0; v < f.VertexCount(); v++ {
		o := v * FloatsPerVertex
		nx, ny, nz := buf[o+3], buf[o+4], buf[o+5]
		l := math.Sqrt(float64(nx*nx + ny*ny + nz*nz))
		if math.Abs(l-1) > 1e-4 {
			t.Fatalf("vertex %d: |n| = %f", v, l)
		}
		if ny <= 0 {
			t.Fatalf("vertex %d: normal points down (%f)", v, ny)
		}
	}
}

func TestGerstnerDisplacement(t *testing.T) {
	p := Params{Amplitude: 1, Frequency: 0, Speed: 0, HorizontalScale: 2}
	pos := Gerstner(0.5, -0.5, 0, p)

	// Zero phase: cos = 1, sin = 0 on both axes.
	if !near(pos[0], 0.5+0.5) || !near(pos[1], 0) || !near(pos[2], -0.5+0.5) {
		t.Errorf("Gerstner = %v", pos)
	}
}

func TestSinusoidHeightOnly(t *testing.T) {
	p := Params{Amplitude: 2, Frequency: 0, Speed: 0, HorizontalScale: 1}
	pos := Sinusoid(0.25, 0.75, 10, p)
	if pos[0] != 0.25 || pos[2] != 0.75 {
		t.Errorf("sinusoid moved horizontally: %v", pos)
	}
	// sin(0) + cos(0) = 1
	if !near(pos[1], 2) {
		t.Errorf("height = %f, want 2", pos[1])
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("gerstner"); err != nil {
		t.Errorf("gerstner: %v", err)
	}
	if _, err := Lookup("sinusoid"); err != nil {
		t.Errorf("sinusoid: %v", err)
	}
	if _, err := Lookup("tsunami"); err == nil {
		t.Error("expected error for unknown displacement")
	}
}

func TestFrequencyFromWavelength(t *testing.T) {
	if got := FrequencyFromWavelength(2 * math.Pi); !near(got, 1) {
		t.Errorf("got %f, want 1", got)
	}
	if got := FrequencyFromWavelength(0); got != 0 {
		t.Errorf("zero wavelength: got %f", got)
	}
}

func BenchmarkGenerate(b *testing.B) {
	p := DefaultParams()
	p.Amplitude = 0.5
	f := NewField(FieldOptions{Grid: DefaultGrid, Params: p})
	for i := 0; i < b.N; i++ {
		f.Generate(float32(i) * 0.016)
	}
}
