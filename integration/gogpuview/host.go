// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuview runs the fractal viewer in a gogpu window.
//
// Rendering is event-driven (ContinuousRender off). While the viewer is
// animated the host holds an animation token so frames arrive at VSync;
// otherwise frames are drawn only when the viewer requests a redraw.
//
// Architecture:
//
//	gogpu events → fractal.Viewer → backend/wgpu.Renderer → surface view
//	hud.Panel → ggcanvas.Canvas → surface (overlay)
package gogpuview

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/backend"
	"github.com/gogpu/fractal/backend/wgpu"
	"github.com/gogpu/fractal/hud"
	"github.com/gogpu/fractal/shader"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Name is the host's registry name.
const Name = backend.BackendGogpu

// HUD overlay position in surface pixels.
const hudX, hudY = 10, 10

func init() {
	backend.Register(Name, func() backend.Host { return host{} })
}

type host struct{}

func (host) Name() string                  { return Name }
func (host) Run(cfg fractal.Config) error { return Run(cfg) }

// Window is a running gogpu viewer window.
type Window struct {
	app      *gogpu.App
	viewer   *fractal.Viewer
	renderer *wgpu.Renderer
	control  *hud.IterationControl
	panel    *hud.Panel
	canvas   *ggcanvas.Canvas

	anim   *gogpu.AnimationToken
	held   fractal.Buttons
	cursor fractal.Point
	scale  float64
	width  int
	height int
}

// Run opens a window for cfg and blocks until it is closed.
func Run(cfg fractal.Config) error {
	w, err := New(cfg)
	if err != nil {
		return err
	}
	return w.Run()
}

// New creates the window, the viewer and the HUD. Nothing is shown until Run.
func New(cfg fractal.Config) (*Window, error) {
	viewer, err := fractal.NewViewer(cfg)
	if err != nil {
		return nil, err
	}
	panel, err := hud.NewPanel()
	if err != nil {
		return nil, err
	}
	lo, hi := viewer.IterationRange()
	control := hud.NewIterationControl(lo, hi, viewer.MaxIterations())
	hud.Connect(viewer, control)
	panel.Bind(viewer, control)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	w := &Window{
		app:     app,
		viewer:  viewer,
		control: control,
		panel:   panel,
		scale:   1,
	}
	viewer.OnRedraw(app.RequestRedraw)
	w.bindEvents()
	app.OnDraw(w.draw)
	app.OnClose(w.close)
	return w, nil
}

// Viewer returns the window's viewer.
func (w *Window) Viewer() *fractal.Viewer { return w.viewer }

// Run shows the window and runs the event loop.
func (w *Window) Run() error {
	fractal.Logger().Info("gogpuview: starting")
	if err := w.app.Run(); err != nil {
		return fmt.Errorf("gogpuview: %w", err)
	}
	return nil
}

func (w *Window) bindEvents() {
	events := w.app.EventSource()

	events.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		btn, ok := mapButton(button)
		if !ok {
			return
		}
		w.held |= fractal.ButtonsOf(btn)
		w.viewer.PointerPress(btn, x*w.scale, y*w.scale)
	})
	events.OnMouseRelease(func(button gpucontext.MouseButton, x, y float64) {
		btn, ok := mapButton(button)
		if !ok {
			return
		}
		w.held &^= fractal.ButtonsOf(btn)
		w.viewer.PointerRelease(btn, x*w.scale, y*w.scale)
	})
	events.OnMouseMove(func(x, y float64) {
		w.cursor = fractal.Point{X: x * w.scale, Y: y * w.scale}
		w.viewer.PointerMove(w.held, w.cursor.X, w.cursor.Y)
	})
	events.OnScroll(func(_, dy float64) {
		// Scroll events carry no position; zoom about the last cursor.
		w.viewer.Wheel(dy, w.cursor.X, w.cursor.Y)
	})
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if hud.Apply(keyAction(key), w.viewer, w.control) {
			w.syncAnimation()
			w.app.RequestRedraw()
		}
	})
}

func (w *Window) draw(dc *gogpu.Context) {
	sw, sh := dc.SurfaceSize()
	if sw == 0 || sh == 0 {
		return
	}
	if w.renderer == nil && !w.initRenderer() {
		return
	}
	if lw := dc.Width(); lw > 0 {
		w.scale = float64(sw) / float64(lw)
	}
	if int(sw) != w.width || int(sh) != w.height {
		w.width, w.height = int(sw), int(sh)
		w.viewer.Resize(w.width, w.height)
	}

	view, _ := dc.SurfaceView().(hal.TextureView)
	w.renderer.SetTarget(view, sw, sh)
	if err := w.viewer.Frame(); err != nil {
		fractal.Logger().Warn("gogpuview: frame", slog.Any("error", err))
	}
	w.drawHUD(dc)
	w.syncAnimation()
}

// initRenderer creates the WebGPU renderer on the app's device. Without HAL
// access the viewer still runs with an unlinked renderer.
func (w *Window) initRenderer() bool {
	provider := w.app.GPUContextProvider()
	if provider == nil {
		return false
	}
	device, queue, err := wgpu.FromProvider(provider)
	if err != nil {
		fractal.Logger().Warn("gogpuview: no HAL device", slog.Any("error", err))
	}
	w.renderer = wgpu.NewRenderer(device, queue, provider.SurfaceFormat(), shader.FractalWGSL())
	w.viewer.Init(w.renderer, w.renderer)

	pw, ph := w.panelSize()
	canvas, err := ggcanvas.New(provider, pw, ph)
	if err != nil {
		fractal.Logger().Warn("gogpuview: hud canvas", slog.Any("error", err))
	} else {
		w.canvas = canvas
	}
	return true
}

func (w *Window) panelSize() (int, int) {
	pw, ph := w.panel.Size()
	return max(pw, 1), max(ph, 1)
}

func (w *Window) drawHUD(dc *gogpu.Context) {
	if w.canvas == nil {
		return
	}
	if w.panel.Dirty() || w.canvas.IsDirty() {
		pw, ph := w.panelSize()
		if cw, ch := w.canvas.Size(); cw != pw || ch != ph {
			if err := w.canvas.Resize(pw, ph); err != nil {
				fractal.Logger().Debug("gogpuview: hud resize", slog.Any("error", err))
			}
		}
		err := w.canvas.Draw(func(cc *gg.Context) {
			cc.Clear()
			w.panel.Draw(cc, 0, 0)
		})
		if err != nil {
			fractal.Logger().Debug("gogpuview: hud draw", slog.Any("error", err))
		}
		w.panel.MarkClean()
	}
	if err := w.canvas.RenderToPosition(dc.AsTextureDrawer(), hudX, hudY); err != nil {
		fractal.Logger().Debug("gogpuview: hud render", slog.Any("error", err))
	}
}

// syncAnimation holds an animation token exactly while the viewer animates.
func (w *Window) syncAnimation() {
	switch {
	case w.viewer.Animated() && w.anim == nil:
		w.anim = w.app.StartAnimation()
	case !w.viewer.Animated() && w.anim != nil:
		w.anim.Stop()
		w.anim = nil
	}
}

func (w *Window) close() {
	if w.anim != nil {
		w.anim.Stop()
		w.anim = nil
	}
	if err := w.viewer.Close(); err != nil {
		fractal.Logger().Warn("gogpuview: close viewer", slog.Any("error", err))
	}
	if w.canvas != nil {
		_ = w.canvas.Close()
		w.canvas = nil
	}
	_ = w.panel.Close()
	fractal.Logger().Info("gogpuview: closed")
}

// mapButton translates a gogpu mouse button.
func mapButton(b gpucontext.MouseButton) (fractal.MouseButton, bool) {
	switch b {
	case gpucontext.MouseButtonLeft:
		return fractal.ButtonPrimary, true
	case gpucontext.MouseButtonRight:
		return fractal.ButtonSecondary, true
	case gpucontext.MouseButtonMiddle:
		return fractal.ButtonMiddle, true
	default:
		return 0, false
	}
}

// keyAction maps gogpu keys to HUD actions.
func keyAction(key gpucontext.Key) hud.Action {
	switch key {
	case gpucontext.KeySpace:
		return hud.ActionToggleAnimation
	case gpucontext.KeyUp:
		return hud.ActionIterationsUp
	case gpucontext.KeyDown:
		return hud.ActionIterationsDown
	case gpucontext.KeyPageUp:
		return hud.ActionIterationsPageUp
	case gpucontext.KeyPageDown:
		return hud.ActionIterationsPageDown
	default:
		return hud.ActionNone
	}
}
