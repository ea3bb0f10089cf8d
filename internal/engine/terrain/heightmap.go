package terrain

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/tidewater/internal/assets"
)

// ProceduralSize is the side length of a generated heightmap.
const ProceduralSize = 256

// LoadHeightmap decodes a grayscale heightmap from the asset manager.
func LoadHeightmap(m *assets.Manager, name string) (*Heightmap, error) {
	img, err := m.LoadImage(name)
	if err != nil {
		return nil, fmt.Errorf("loading heightmap: %w", err)
	}
	return FromImage(img)
}

// FromImage converts a decoded image to a heightmap using its luminance.
func FromImage(img *assets.Image) (*Heightmap, error) {
	if img.Width < 2 || img.Height < 2 {
		return nil, errors.New("heightmap must be at least 2x2")
	}
	return &Heightmap{
		Width:   img.Width,
		Depth:   img.Height,
		Samples: img.Luminance(),
	}, nil
}

// Generate builds a size×size heightmap from two octaves of Perlin noise:
// a broad landform and finer detail.
func Generate(size int, seed int64) *Heightmap {
	broad := perlin.NewPerlin(2, 2, 3, seed)
	detail := perlin.NewPerlin(1.5, 2, 4, seed+1)

	const (
		broadFreq  = 3.0
		detailFreq = 12.0
	)

	samples := make([]uint8, size*size)
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size)
			v := float64(z) / float64(size)

			h := broad.Noise2D(u*broadFreq, v*broadFreq)*0.8 + detail.Noise2D(u*detailFreq, v*detailFreq)*0.2
			samples[z*size+x] = clampToByte((h + 0.5) * 255)
		}
	}

	return &Heightmap{Width: size, Depth: size, Samples: samples}
}

func clampToByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
