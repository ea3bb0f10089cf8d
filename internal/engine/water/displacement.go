package water

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Params are the wave tunables read by a displacement function.
type Params struct {
	Amplitude       float32
	Frequency       float32 // radians per world unit
	Speed           float32 // radians per second
	HorizontalScale float32 // world size of the normalized [-1,1] grid
}

// DefaultParams returns the wave tunables used by the scene.
func DefaultParams() Params {
	return Params{
		Amplitude:       0,
		Frequency:       FrequencyFromWavelength(20),
		Speed:           1,
		HorizontalScale: 200,
	}
}

// FrequencyFromWavelength converts a wavelength in world units to angular frequency.
func FrequencyFromWavelength(wavelength float32) float32 {
	if wavelength <= 0 {
		return 0
	}
	return 2 * math.Pi / wavelength
}

// Displacement maps a rest position on the normalized grid to its displaced
// position at time t.
type Displacement func(x, z, t float32, p Params) mgl32.Vec3

// Gerstner moves each point on a closed orbit along both horizontal axes.
// Horizontal offsets are divided by the horizontal scale so they stay in grid space.
func Gerstner(x, z, t float32, p Params) mgl32.Vec3 {
	pos := mgl32.Vec3{x, 0, z}
	scale := p.HorizontalScale
	if scale == 0 {
		scale = 1
	}

	xPhase := float64(p.Frequency*(x*scale) - p.Speed*t)
	pos[0] += (p.Amplitude / scale) * float32(math.Cos(xPhase))
	pos[1] += p.Amplitude * float32(math.Sin(xPhase))

	zPhase := float64(p.Frequency*(z*scale) - p.Speed*t)
	pos[2] += (p.Amplitude / scale) * float32(math.Cos(zPhase))
	pos[1] += p.Amplitude * float32(math.Sin(zPhase))

	return pos
}

// Sinusoid displaces height only, as a sum of a sine along x and a cosine along z.
func Sinusoid(x, z, t float32, p Params) mgl32.Vec3 {
	scale := p.HorizontalScale
	if scale == 0 {
		scale = 1
	}
	y := p.Amplitude * float32(
		math.Sin(float64(p.Frequency*(x*scale)+p.Speed*t))+
			math.Cos(float64(p.Frequency*(z*scale)+p.Speed*t)))
	return mgl32.Vec3{x, y, z}
}

var displacements = map[string]Displacement{
	"gerstner": Gerstner,
	"sinusoid": Sinusoid,
}

// Lookup returns the displacement registered under name.
func Lookup(name string) (Displacement, error) {
	d, ok := displacements[name]
	if !ok {
		return nil, fmt.Errorf("unknown wave displacement %q", name)
	}
	return d, nil
}
