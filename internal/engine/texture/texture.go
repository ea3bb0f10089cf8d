// Package texture uploads decoded images to OpenGL textures.
package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tidewater/internal/assets"
)

// CubeFaces lists the six cubemap images in GL face order (+X, -X, +Y, -Y, +Z, -Z).
var CubeFaces = [6]string{"right", "left", "top", "bottom", "front", "back"}

// Upload2D creates a mipmapped, repeating RGBA texture.
func Upload2D(img *assets.Image) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Width), int32(img.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// Load2D loads and uploads an image. On failure it still returns a usable
// 1×1 white texture together with the error, so rendering can continue.
func Load2D(m *assets.Manager, name string) (uint32, error) {
	img, err := m.LoadImage(name)
	if err != nil {
		return Upload2D(assets.Blank()), err
	}
	return Upload2D(img), nil
}

// LoadCubemap loads dir/<face>.<ext> for each of CubeFaces. Missing faces are
// replaced by a white face and reported in the returned error.
func LoadCubemap(m *assets.Manager, dir, ext string) (uint32, error) {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texID)

	var firstErr error
	for i, face := range CubeFaces {
		name := fmt.Sprintf("%s/%s.%s", dir, face, ext)
		img, err := m.LoadImage(name)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("cubemap face %s: %w", face, err)
			}
			img = assets.Blank()
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Width), int32(img.Height),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return texID, firstErr
}

// Bind binds a 2D texture to a texture unit index (0 = GL_TEXTURE0).
func Bind(unit uint32, texID uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texID)
}

// BindCubemap binds a cubemap to a texture unit index.
func BindCubemap(unit uint32, texID uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texID)
}

// Delete releases a texture and zeroes the handle.
func Delete(texID *uint32) {
	if *texID != 0 {
		gl.DeleteTextures(1, texID)
		*texID = 0
	}
}
