package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	// Registered decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Image is a decoded texture in tightly packed RGBA8, top row first.
type Image struct {
	Width    int
	Height   int
	Channels int // always 4 after decoding
	Pix      []byte
}

// LoadImage loads and decodes a PNG, JPEG or BMP asset.
func (m *Manager) LoadImage(name string) (*Image, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// DecodeImage decodes any registered image format into RGBA8.
func DecodeImage(data []byte) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return FromImage(src), nil
}

// FromImage converts an image.Image to a packed RGBA8 Image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	return &Image{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: 4,
		Pix:      rgba.Pix,
	}
}

// Blank returns a 1x1 opaque white image used when an asset fails to load.
func Blank() *Image {
	return &Image{Width: 1, Height: 1, Channels: 4, Pix: []byte{255, 255, 255, 255}}
}

// Luminance returns one byte per pixel using Rec. 601 luma weights.
func (img *Image) Luminance() []uint8 {
	out := make([]uint8, img.Width*img.Height)
	for i := range out {
		p := img.Pix[i*4 : i*4+4]
		y := color.GrayModel.Convert(color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}).(color.Gray)
		out[i] = y.Y
	}
	return out
}
