// Package shadow provides the depth map for directional light shadows.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tidewater/internal/engine/frame"
)

// Map is a depth-only framebuffer sized independently of the screen.
type Map struct {
	fbo        uint32
	depthTex   uint32
	resolution int32 // width = height
}

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 4096

// NewMap creates a new shadow map with the specified resolution.
// Resolution should be a power of 2 (e.g., 1024, 2048, 4096).
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	sm := &Map{
		resolution: resolution,
	}

	gl.GenFramebuffers(1, &sm.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.fbo)

	gl.GenTextures(1, &sm.depthTex)
	gl.BindTexture(gl.TEXTURE_2D, sm.depthTex)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.DEPTH_COMPONENT24,
		resolution,
		resolution,
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Clamp to border with white (1.0) so everything outside the frustum is lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.FramebufferTexture2D(
		gl.FRAMEBUFFER,
		gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D,
		sm.depthTex,
		0,
	)

	// No color buffer for shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}

	return sm, nil
}

// FBO returns the framebuffer object.
func (sm *Map) FBO() uint32 { return sm.fbo }

// DepthTexture returns the depth texture sampled by the main pass.
func (sm *Map) DepthTexture() uint32 { return sm.depthTex }

// Resolution returns the side length of the depth map.
func (sm *Map) Resolution() int32 { return sm.resolution }

// Viewport covers the whole depth map.
func (sm *Map) Viewport() frame.Viewport {
	return frame.Viewport{W: sm.resolution, H: sm.resolution}
}

// BeginDepth clears the bound depth map and culls front faces to reduce acne.
func (sm *Map) BeginDepth() {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// EndDepth restores back-face culling state.
func (sm *Map) EndDepth() {
	gl.CullFace(gl.BACK)
	gl.Disable(gl.CULL_FACE)
}

// BindTexture binds the depth texture to the given unit index (0 = GL_TEXTURE0).
func (sm *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, sm.depthTex)
}

// Destroy releases all GPU resources associated with this shadow map.
func (sm *Map) Destroy() {
	if sm.fbo != 0 {
		gl.DeleteFramebuffers(1, &sm.fbo)
		sm.fbo = 0
	}
	if sm.depthTex != 0 {
		gl.DeleteTextures(1, &sm.depthTex)
		sm.depthTex = 0
	}
}
