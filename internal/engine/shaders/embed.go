// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader is the vertex shader for the flattened model buffers.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader shades the model with the orbiting point light.
//
//go:embed model.frag
var ModelFragmentShader string

// GridVertexShader generates the grid quad around the camera.
//
//go:embed grid.vert
var GridVertexShader string

// GridFragmentShader draws anti-aliased grid lines with LOD fading.
//
//go:embed grid.frag
var GridFragmentShader string

// LineVertexShader is the vertex shader for debug lines.
//
//go:embed lines.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug lines.
//
//go:embed lines.frag
var LineFragmentShader string
