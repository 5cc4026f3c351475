// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"reflect"
	"testing"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/hud"
	"github.com/gogpu/fractal/shader"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestQuadVertices(t *testing.T) {
	got := quadVertices(640, 480)
	want := [][2]float32{{0, 480}, {640, 0}, {0, 0}, {640, 480}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].DstX != w[0] || got[i].DstY != w[1] {
			t.Errorf("vertex %d = (%v, %v), want %v", i, got[i].DstX, got[i].DstY, w)
		}
		if got[i].ColorA != 1 {
			t.Errorf("vertex %d alpha = %v", i, got[i].ColorA)
		}
	}
}

func TestQuadIndices(t *testing.T) {
	if got, want := quadIndices(), []uint16{0, 1, 2, 0, 3, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("quadIndices() = %v, want %v", got, want)
	}
}

func testLayout(t *testing.T) *shader.KageLayout {
	t.Helper()
	layout, err := shader.ReflectKage(shader.FractalKage())
	if err != nil {
		t.Fatalf("ReflectKage: %v", err)
	}
	return layout
}

func TestRenderer_Uniforms(t *testing.T) {
	layout := testLayout(t)
	r := newRenderer(nil, layout)

	loc := func(name string) fractal.UniformLocation {
		i, ok := layout.Lookup(name)
		if !ok {
			t.Fatalf("uniform %q missing", name)
		}
		return fractal.UniformLocation(i)
	}
	r.SetVec2(loc(fractal.UniformResolution), 640, 480)
	r.SetFloat(loc(fractal.UniformZoom), 2)
	r.SetInt(loc(fractal.UniformMaxIterations), 100)
	r.SetFloat(fractal.UniformLocation(99), 1)
	r.SetFloat(-1, 1)

	want := map[string]any{
		"Resolution":    []float32{640, 480},
		"Zoom":          float32(2),
		"MaxIterations": int32(100),
	}
	if !reflect.DeepEqual(r.Uniforms(), want) {
		t.Errorf("Uniforms() = %v, want %v", r.Uniforms(), want)
	}
}

func TestRenderer_Unlinked(t *testing.T) {
	r := newRenderer(nil, testLayout(t))
	if r.Linked() {
		t.Fatal("renderer without shader reports linked")
	}
	if _, ok := r.UniformLocation(fractal.UniformZoom); ok {
		t.Error("unlinked renderer resolved a uniform")
	}

	r.SetViewport(0, -5)
	if r.width != 1 || r.height != 1 {
		t.Errorf("viewport = %dx%d, want 1x1", r.width, r.height)
	}
	r.Clear()
	r.BindQuad()
	r.DrawQuad(fractal.QuadIndexCount)
	r.ReleaseQuad()
	if err := r.Present(); err != nil {
		t.Errorf("Present() = %v", err)
	}
	r.Destroy()
}

func TestMapButton(t *testing.T) {
	tests := []struct {
		in   ebiten.MouseButton
		want fractal.MouseButton
	}{
		{ebiten.MouseButtonLeft, fractal.ButtonPrimary},
		{ebiten.MouseButtonRight, fractal.ButtonSecondary},
		{ebiten.MouseButtonMiddle, fractal.ButtonMiddle},
	}
	for _, tt := range tests {
		got, ok := mapButton(tt.in)
		if !ok || got != tt.want {
			t.Errorf("mapButton(%v) = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want hud.Action
	}{
		{ebiten.KeySpace, hud.ActionToggleAnimation},
		{ebiten.KeyArrowUp, hud.ActionIterationsUp},
		{ebiten.KeyArrowDown, hud.ActionIterationsDown},
		{ebiten.KeyPageUp, hud.ActionIterationsPageUp},
		{ebiten.KeyPageDown, hud.ActionIterationsPageDown},
		{ebiten.KeyEscape, hud.ActionNone},
	}
	for _, tt := range tests {
		if got := keyAction(tt.key); got != tt.want {
			t.Errorf("keyAction(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGame_Layout(t *testing.T) {
	v, err := fractal.NewViewer(fractal.DefaultConfig().WithAnimated(false))
	if err != nil {
		t.Fatal(err)
	}
	g := &Game{viewer: v, renderer: newRenderer(nil, nil)}
	v.OnRedraw(func() { g.redraw = true })

	w, h := g.Layout(800, 0)
	if w != 800 || h != 1 {
		t.Errorf("Layout() = %dx%d, want 800x1", w, h)
	}
	if got := v.Viewport().Resolution; got.X != 800 || got.Y != 1 {
		t.Errorf("viewer resolution = %v", got)
	}
	if !g.redraw {
		t.Error("resize did not request a redraw")
	}

	g.redraw = false
	g.Layout(800, 1)
	if g.redraw {
		t.Error("unchanged layout requested a redraw")
	}
}
