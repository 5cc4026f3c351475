// Package hud draws the viewer's heads-up display: the iteration control
// and a small label with the iteration count and the measured frame rate.
package hud

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/fractal"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Panel layout in pixels.
const (
	FontSize   = 14.0
	Padding    = 8.0
	LineHeight = FontSize * 1.4
	Radius     = 6.0
)

// Panel is the HUD label. It observes the frame rate and the iteration
// count and keeps a rasterized copy of itself that is rebuilt only when the
// text changes.
type Panel struct {
	source  *text.FontSource
	face    text.Face
	printer *message.Printer

	iterations int
	fps        int

	cache *gg.Context
	dirty bool
}

// NewPanel loads the Go Regular face and creates an empty panel.
func NewPanel() (*Panel, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	return &Panel{
		source:  source,
		face:    source.Face(FontSize),
		printer: message.NewPrinter(language.English),
		dirty:   true,
	}, nil
}

// SetIterations updates the iteration count shown.
func (p *Panel) SetIterations(n int) {
	if n != p.iterations {
		p.iterations = n
		p.dirty = true
	}
}

// SetFPS updates the frame rate shown. Its signature matches
// fractal.Viewer.OnFPS.
func (p *Panel) SetFPS(fps int) {
	if fps != p.fps {
		p.fps = fps
		p.dirty = true
	}
}

// Iterations returns the iteration count shown.
func (p *Panel) Iterations() int { return p.iterations }

// FPS returns the frame rate shown.
func (p *Panel) FPS() int { return p.fps }

// Bind subscribes the panel to v's frame rate and to ctrl's value, and
// seeds it with their current state.
func (p *Panel) Bind(v *fractal.Viewer, ctrl *IterationControl) {
	v.OnFPS(p.SetFPS)
	ctrl.OnChange(p.SetIterations)
	p.SetIterations(ctrl.Value())
	p.SetFPS(v.FPS())
}

// Lines returns the label lines.
func (p *Panel) Lines() []string {
	return []string{
		p.printer.Sprintf("Iterations: %d", p.iterations),
		p.printer.Sprintf("FPS: %d", p.fps),
	}
}

// Text returns the label text, one line per row.
func (p *Panel) Text() string {
	lines := p.Lines()
	return lines[0] + "\n" + lines[1]
}

// Dirty reports whether the text changed since the last Image or MarkClean.
func (p *Panel) Dirty() bool { return p.dirty }

// MarkClean clears the dirty flag. Hosts that draw the panel into their own
// canvas call it after Draw.
func (p *Panel) MarkClean() { p.dirty = false }

// Size returns the panel size in pixels for the current text.
func (p *Panel) Size() (w, h int) {
	measure := gg.NewContext(1, 1)
	defer measure.Close()
	measure.SetFont(p.face)

	var width float64
	for _, line := range p.Lines() {
		lw, _ := measure.MeasureString(line)
		width = math.Max(width, lw)
	}
	w = int(math.Ceil(width + 2*Padding))
	h = int(math.Ceil(float64(len(p.Lines()))*LineHeight + 2*Padding))
	return w, h
}

// Draw renders the panel into dc with its top-left corner at (x, y).
func (p *Panel) Draw(dc *gg.Context, x, y float64) {
	w, h := p.Size()
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), Radius)
	if err := dc.Fill(); err != nil {
		fractal.Logger().Debug("hud: panel fill", slog.Any("error", err))
	}

	dc.SetFont(p.face)
	dc.SetRGBA(1, 1, 1, 1)
	for i, line := range p.Lines() {
		baseline := y + Padding + FontSize + float64(i)*LineHeight
		dc.DrawString(line, x+Padding, baseline)
	}
}

// Image returns the panel rasterized on a transparent background. The
// raster is cached until the text changes.
func (p *Panel) Image() image.Image {
	if p.cache != nil && !p.dirty {
		return p.cache.Image()
	}
	w, h := p.Size()
	if p.cache == nil || p.cache.Width() != w || p.cache.Height() != h {
		if p.cache != nil {
			_ = p.cache.Close()
		}
		p.cache = gg.NewContext(w, h)
	}
	p.cache.Clear()
	p.Draw(p.cache, 0, 0)
	p.dirty = false
	return p.cache.Image()
}

// Close releases the raster and the font source.
func (p *Panel) Close() error {
	if p.cache != nil {
		_ = p.cache.Close()
		p.cache = nil
	}
	if p.source != nil {
		err := p.source.Close()
		p.source = nil
		return err
	}
	return nil
}
