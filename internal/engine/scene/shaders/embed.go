// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SkyVertexShader is the vertex shader for the skybox cube.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader samples the sky cubemap, optionally tinted by fog.
//
//go:embed sky.frag
var SkyFragmentShader string

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for terrain rendering.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// WaterVertexShader is the vertex shader for the animated water surface.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader blends reflection, sky and shadowed lighting on water.
//
//go:embed water.frag
var WaterFragmentShader string

// ShadowVertexShader transforms shadow casters into light space.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is an empty depth-only fragment stage.
//
//go:embed shadow.frag
var ShadowFragmentShader string

// LightVertexShader is the vertex shader for the light marker cube.
//
//go:embed light.vert
var LightVertexShader string

// LightFragmentShader draws the light marker in a flat color.
//
//go:embed light.frag
var LightFragmentShader string

// ParticleVertexShader expands instanced particles into sized points.
//
//go:embed particle.vert
var ParticleVertexShader string

// ParticleFragmentShader textures point sprites with the instance color.
//
//go:embed particle.frag
var ParticleFragmentShader string
