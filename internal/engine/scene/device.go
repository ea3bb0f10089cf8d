package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tidewater/internal/engine/frame"
)

// GLDevice drives target binding and viewports on the current GL context.
type GLDevice struct{}

// BindTarget binds a framebuffer object; 0 is the window.
func (GLDevice) BindTarget(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

// SetViewport sets the GL viewport.
func (GLDevice) SetViewport(v frame.Viewport) {
	gl.Viewport(v.X, v.Y, v.W, v.H)
}

// ReadPixels reads the bound read framebuffer as bottom-up RGBA rows.
func (GLDevice) ReadPixels(v frame.Viewport) []byte {
	pixels := make([]byte, int(v.W)*int(v.H)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(v.X, v.Y, v.W, v.H, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

var _ frame.Device = GLDevice{}
