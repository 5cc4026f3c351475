// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/shader"
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer draws the fractal quad with a Kage shader. It implements both
// fractal.Program and fractal.Device: uniform locations are indices into
// the shader's uniform declarations and values are collected into the
// uniform map passed to DrawTrianglesShader.
//
// A Renderer whose shader failed to compile stays usable but reports
// Linked() == false, and its frames only clear the target.
type Renderer struct {
	shader   *ebiten.Shader
	layout   *shader.KageLayout
	uniforms map[string]any

	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	width    int
	height   int
}

// NewRenderer compiles src. Compile errors are logged and produce an
// unlinked renderer.
func NewRenderer(src string) *Renderer {
	layout, err := shader.ReflectKage(src)
	if err != nil {
		fractal.Logger().Warn("ebitenview: reflect kage", slog.Any("error", err))
		return newRenderer(nil, nil)
	}
	s, err := ebiten.NewShader([]byte(src))
	if err != nil {
		fractal.Logger().Warn("ebitenview: compile kage", slog.Any("error", err))
		return newRenderer(nil, layout)
	}
	return newRenderer(s, layout)
}

func newRenderer(s *ebiten.Shader, layout *shader.KageLayout) *Renderer {
	return &Renderer{
		shader:   s,
		layout:   layout,
		uniforms: make(map[string]any, len(fractal.UniformNames)),
		indices:  quadIndices(),
		width:    1,
		height:   1,
	}
}

// SetTarget sets the image the next frame draws into.
func (r *Renderer) SetTarget(img *ebiten.Image) { r.target = img }

// Uniforms returns the uniform values collected so far, keyed by Kage name.
func (r *Renderer) Uniforms() map[string]any { return r.uniforms }

// Linked reports whether the shader compiled.
func (r *Renderer) Linked() bool { return r.shader != nil && r.layout != nil }

// Bind is a no-op: the shader is selected per draw call.
func (r *Renderer) Bind() {}

// Release is a no-op: uniforms are passed per draw call.
func (r *Renderer) Release() {}

// UniformLocation returns the declaration index of name.
func (r *Renderer) UniformLocation(name string) (fractal.UniformLocation, bool) {
	if !r.Linked() {
		return -1, false
	}
	i, ok := r.layout.Lookup(name)
	return fractal.UniformLocation(i), ok
}

func (r *Renderer) uniformName(loc fractal.UniformLocation) (string, bool) {
	if r.layout == nil || loc < 0 || int(loc) >= len(r.layout.Uniforms) {
		return "", false
	}
	return r.layout.Uniforms[loc].Name, true
}

// SetVec2 sets a vec2 uniform.
func (r *Renderer) SetVec2(loc fractal.UniformLocation, x, y float32) {
	if name, ok := r.uniformName(loc); ok {
		r.uniforms[name] = []float32{x, y}
	}
}

// SetFloat sets a float uniform.
func (r *Renderer) SetFloat(loc fractal.UniformLocation, v float32) {
	if name, ok := r.uniformName(loc); ok {
		r.uniforms[name] = v
	}
}

// SetInt sets an int uniform.
func (r *Renderer) SetInt(loc fractal.UniformLocation, v int32) {
	if name, ok := r.uniformName(loc); ok {
		r.uniforms[name] = v
	}
}

// SetViewport records the drawable size in pixels, clamped to 1x1.
func (r *Renderer) SetViewport(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
}

// Clear fills the target with opaque black.
func (r *Renderer) Clear() {
	if r.target != nil {
		r.target.Fill(color.Black)
	}
}

// BindQuad lays out the quad for the current viewport.
func (r *Renderer) BindQuad() {
	r.vertices = quadVertices(r.width, r.height)
}

// DrawQuad draws count indices of the bound quad.
func (r *Renderer) DrawQuad(count int) {
	if r.target == nil || !r.Linked() || len(r.vertices) == 0 {
		return
	}
	count = min(count, len(r.indices))
	r.target.DrawTrianglesShader(r.vertices, r.indices[:count], r.shader, &ebiten.DrawTrianglesShaderOptions{
		Uniforms: r.uniforms,
	})
}

// ReleaseQuad drops the vertex slice.
func (r *Renderer) ReleaseQuad() { r.vertices = nil }

// Present is a no-op: Ebitengine presents the screen after Draw.
func (r *Renderer) Present() error { return nil }

// Destroy deallocates the shader.
func (r *Renderer) Destroy() {
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
	}
	r.target = nil
}

// quadVertices maps the clip-space quad onto a width x height pixel target.
// Clip space is y-up, Ebitengine images are y-down.
func quadVertices(width, height int) []ebiten.Vertex {
	clip := fractal.QuadVertices()
	out := make([]ebiten.Vertex, len(clip))
	w, h := float32(width), float32(height)
	for i, v := range clip {
		x := (v[0] + 1) / 2 * w
		y := (1 - v[1]) / 2 * h
		out[i] = ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: x, SrcY: y,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	return out
}

func quadIndices() []uint16 {
	idx := fractal.QuadIndices()
	out := make([]uint16, len(idx))
	for i, v := range idx {
		out[i] = uint16(v)
	}
	return out
}
