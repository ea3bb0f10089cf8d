package frame

// Viewport is a rectangle in window pixels.
type Viewport struct {
	X, Y int32
	W, H int32
}

// DefaultTarget is the window's own framebuffer.
const DefaultTarget uint32 = 0

// Device is the part of the graphics API the composer drives directly.
type Device interface {
	BindTarget(fbo uint32)
	SetViewport(v Viewport)
}

// Target is an offscreen render target.
type Target interface {
	FBO() uint32
	Viewport() Viewport
}

// Pass is a scoped offscreen render. End restores the default target and the
// live screen viewport.
type Pass struct {
	dev   Device
	cfg   *SceneConfig
	ended bool
}

// BeginPass binds t and forces its viewport.
func BeginPass(dev Device, cfg *SceneConfig, t Target) *Pass {
	dev.BindTarget(t.FBO())
	dev.SetViewport(t.Viewport())
	return &Pass{dev: dev, cfg: cfg}
}

// End is safe to call more than once.
func (p *Pass) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.dev.BindTarget(DefaultTarget)
	p.dev.SetViewport(p.cfg.Screen())
}
