// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// AttractorVertexShader transforms tube vertices with mat4 model and mvp uniforms.
//
//go:embed attractor.vert
var AttractorVertexShader string

// AttractorSplitVertexShader is AttractorVertexShader with each matrix passed
// as four vec4 column uniforms (model_0..3, trans_0..3).
//
//go:embed attractor_split.vert
var AttractorSplitVertexShader string

// AttractorFragmentShader shades tubes with the color and light_color uniforms.
//
//go:embed attractor.frag
var AttractorFragmentShader string

// BackgroundVertexShader passes the gradient quad through in clip space.
//
//go:embed background.vert
var BackgroundVertexShader string

// BackgroundFragmentShader outputs the interpolated vertex color.
//
//go:embed background.frag
var BackgroundFragmentShader string
