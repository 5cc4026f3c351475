// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenview runs the fractal viewer on Ebitengine.
//
// The screen is not cleared between frames, so the fractal is redrawn only
// when the viewer asks for it or while it is animated. The HUD is drawn on
// top of every redrawn frame.
package ebitenview

import (
	"errors"
	"log/slog"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/backend"
	"github.com/gogpu/fractal/hud"
	"github.com/gogpu/fractal/shader"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Name is the host's registry name.
const Name = backend.BackendEbiten

// HUD overlay position in screen pixels.
const hudX, hudY = 10, 10

func init() {
	backend.Register(Name, func() backend.Host { return host{} })
}

type host struct{}

func (host) Name() string                  { return Name }
func (host) Run(cfg fractal.Config) error { return Run(cfg) }

// Game is an ebiten.Game driving a fractal viewer.
type Game struct {
	viewer   *fractal.Viewer
	renderer *Renderer
	control  *hud.IterationControl
	panel    *hud.Panel
	hudImage *ebiten.Image

	redraw bool
	cursor fractal.Point
	width  int
	height int
	closed bool
}

// Run opens a window for cfg and blocks until it is closed.
func Run(cfg fractal.Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowClosingHandled(true)

	fractal.Logger().Info("ebitenview: starting")
	err = ebiten.RunGame(g)
	g.close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// NewGame creates the viewer, the Kage renderer and the HUD.
func NewGame(cfg fractal.Config) (*Game, error) {
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

	g := &Game{
		viewer:   viewer,
		renderer: NewRenderer(shader.FractalKage()),
		control:  control,
		panel:    panel,
		redraw:   true,
	}
	viewer.OnRedraw(func() { g.redraw = true })
	viewer.Init(g.renderer, g.renderer)
	return g, nil
}

// Viewer returns the game's viewer.
func (g *Game) Viewer() *fractal.Viewer { return g.viewer }

// Layout uses the window size as the screen size and resizes the viewer
// when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.viewer.Resize(w, h)
		g.redraw = true
	}
	return w, h
}

// Update forwards input to the viewer.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	cx, cy := ebiten.CursorPosition()
	pos := fractal.Point{X: float64(cx), Y: float64(cy)}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			if btn, ok := mapButton(b); ok {
				g.viewer.PointerPress(btn, pos.X, pos.Y)
			}
		}
	}
	if pos != g.cursor {
		g.cursor = pos
		g.viewer.PointerMove(heldButtons(), pos.X, pos.Y)
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(b) {
			if btn, ok := mapButton(b); ok {
				g.viewer.PointerRelease(btn, pos.X, pos.Y)
			}
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.viewer.Wheel(dy, pos.X, pos.Y)
	}

	for _, k := range actionKeys {
		if inpututil.IsKeyJustPressed(k) || repeating(k) {
			if hud.Apply(keyAction(k), g.viewer, g.control) {
				g.redraw = true
			}
		}
	}
	if g.panel.Dirty() {
		g.redraw = true
	}
	return nil
}

// Draw renders a frame when one is due.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.redraw && !g.viewer.Animated() {
		return
	}
	g.redraw = false
	g.renderer.SetTarget(screen)
	if err := g.viewer.Frame(); err != nil {
		fractal.Logger().Warn("ebitenview: frame", slog.Any("error", err))
	}
	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.panel.Dirty() || g.hudImage == nil {
		if g.hudImage != nil {
			g.hudImage.Deallocate()
		}
		g.hudImage = ebiten.NewImageFromImage(g.panel.Image())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(hudX, hudY)
	screen.DrawImage(g.hudImage, op)
}

func (g *Game) close() {
	if g.closed {
		return
	}
	g.closed = true
	if err := g.viewer.Close(); err != nil {
		fractal.Logger().Warn("ebitenview: close viewer", slog.Any("error", err))
	}
	if g.hudImage != nil {
		g.hudImage.Deallocate()
		g.hudImage = nil
	}
	_ = g.panel.Close()
	fractal.Logger().Info("ebitenview: closed")
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

var actionKeys = []ebiten.Key{
	ebiten.KeySpace,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyPageUp,
	ebiten.KeyPageDown,
}

// Key repeat timing in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// repeating reports auto-repeat for held iteration keys.
func repeating(k ebiten.Key) bool {
	if k == ebiten.KeySpace {
		return false
	}
	d := inpututil.KeyPressDuration(k)
	return d > repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func heldButtons() fractal.Buttons {
	var held fractal.Buttons
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b) {
			if btn, ok := mapButton(b); ok {
				held |= fractal.ButtonsOf(btn)
			}
		}
	}
	return held
}

// mapButton translates an Ebitengine mouse button.
func mapButton(b ebiten.MouseButton) (fractal.MouseButton, bool) {
	switch b {
	case ebiten.MouseButtonLeft:
		return fractal.ButtonPrimary, true
	case ebiten.MouseButtonRight:
		return fractal.ButtonSecondary, true
	case ebiten.MouseButtonMiddle:
		return fractal.ButtonMiddle, true
	default:
		return 0, false
	}
}

// keyAction maps Ebitengine keys to HUD actions.
func keyAction(k ebiten.Key) hud.Action {
	switch k {
	case ebiten.KeySpace:
		return hud.ActionToggleAnimation
	case ebiten.KeyArrowUp:
		return hud.ActionIterationsUp
	case ebiten.KeyArrowDown:
		return hud.ActionIterationsDown
	case ebiten.KeyPageUp:
		return hud.ActionIterationsPageUp
	case ebiten.KeyPageDown:
		return hud.ActionIterationsPageDown
	default:
		return hud.ActionNone
	}
}
