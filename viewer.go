package fractal

import (
	"fmt"
	"log/slog"
)

// Viewer is the render-loop engine of the fractal view.
//
// A host creates a Viewer, hands it a Program and a Device with Init,
// forwards surface and pointer events to it, and calls Frame whenever the
// viewer requests a redraw (or continuously while animated).
//
// All methods must be called from the host's UI goroutine.
type Viewer struct {
	cfg  Config
	opts viewerOptions

	vp      Viewport
	ctrl    *Controller
	sampler *Sampler
	slots   uniformSlots

	program Program
	device  Device

	animated    bool
	warnedLink  bool
	closed      bool
	redrawHooks []func()
}

// NewViewer creates a viewer with cfg. The initial iteration cap is clamped
// to the configured range.
func NewViewer(cfg Config, opts ...Option) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	v := &Viewer{
		cfg:      cfg,
		opts:     o,
		vp:       DefaultViewport(),
		sampler:  NewSampler(o.clock),
		animated: cfg.Animated,
	}
	v.vp.Resolution = Pt(float64(cfg.Width), float64(cfg.Height))
	v.vp.MaxIterations = clampIterations(cfg.MaxIterations, cfg.MinIterations, cfg.MaxIterationsLimit)
	v.ctrl = NewController(&v.vp, cfg.ZoomFactor)

	Logger().Info("fractal: viewer created",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Int("maxIterations", v.vp.MaxIterations),
		slog.Bool("animated", v.animated))
	return v, nil
}

// Init attaches the graphics collaborators and resolves uniform slots once.
// Either may be nil, in which case frames are clear-only (or empty).
func (v *Viewer) Init(p Program, d Device) {
	v.program = p
	v.device = d
	v.slots = lookupSlots(p)
	v.warnedLink = false
	if d != nil {
		d.SetViewport(int(v.vp.Resolution.X), int(v.vp.Resolution.Y))
	}
}

// Frame renders one frame.
//
// The sampling scope is closed on every path out of Frame, including a
// panic inside the collaborators. A Present error is logged and returned
// wrapped in ErrPresent; the viewer stays usable.
func (v *Viewer) Frame() error {
	if v.closed {
		return ErrClosed
	}
	defer v.sampler.Begin().End()

	if v.device != nil {
		v.device.Clear()
	}
	if v.linked() {
		v.program.Bind()
		if v.device != nil {
			v.device.BindQuad()
		}
		v.slots.sync(v.program, &v.vp, v.opts.wallClock())
		if v.device != nil {
			v.device.DrawQuad(QuadIndexCount)
			v.device.ReleaseQuad()
		}
		v.program.Release()
	} else if v.program != nil && !v.warnedLink {
		v.warnedLink = true
		Logger().Warn("fractal: program not linked, drawing cleared frames")
	}

	// Counts cadence, not draw success.
	v.sampler.Tick()

	if v.animated {
		v.RequestRedraw()
	}

	if v.device == nil {
		return nil
	}
	if err := v.device.Present(); err != nil {
		Logger().Warn("fractal: present failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrPresent, err)
	}
	return nil
}

// Resize reconfigures the viewport. Non-positive dimensions are clamped
// to 1. When the program is linked the uniforms are pushed immediately so a
// non-animated view picks up the new aspect ratio on the next frame.
func (v *Viewer) Resize(width, height int) {
	width = clampDimension(width)
	height = clampDimension(height)
	Logger().Debug("fractal: resize", slog.Int("width", width), slog.Int("height", height))

	if v.device != nil {
		v.device.SetViewport(width, height)
	}
	v.vp.Resolution = Pt(float64(width), float64(height))

	if !v.linked() || v.closed {
		return
	}
	release := v.opts.binder.MakeCurrent()
	defer release()
	v.program.Bind()
	v.slots.sync(v.program, &v.vp, v.opts.wallClock())
	v.program.Release()
}

// PointerPress forwards a button press at pixel position (x, y).
func (v *Viewer) PointerPress(btn MouseButton, x, y float64) {
	v.redrawIf(v.ctrl.Press(btn, Pt(x, y)))
}

// PointerMove forwards pointer motion with the set of held buttons.
func (v *Viewer) PointerMove(held Buttons, x, y float64) {
	v.redrawIf(v.ctrl.Move(held, Pt(x, y)))
}

// PointerRelease forwards a button release.
func (v *Viewer) PointerRelease(btn MouseButton, x, y float64) {
	v.redrawIf(v.ctrl.Release(btn, Pt(x, y)))
}

// Wheel forwards a vertical wheel event. Positive delta zooms in toward
// the cursor.
func (v *Viewer) Wheel(delta, x, y float64) {
	v.redrawIf(v.ctrl.Scroll(delta, Pt(x, y)))
}

// SetMaxIterations sets the iteration cap, clamped to the configured
// range, and returns the value applied.
func (v *Viewer) SetMaxIterations(n int) int {
	n = clampIterations(n, v.cfg.MinIterations, v.cfg.MaxIterationsLimit)
	if n != v.vp.MaxIterations {
		v.vp.MaxIterations = n
		v.RequestRedraw()
	}
	return n
}

// MaxIterations returns the current iteration cap.
func (v *Viewer) MaxIterations() int {
	return v.vp.MaxIterations
}

// IterationRange returns the bounds SetMaxIterations clamps to.
func (v *Viewer) IterationRange() (lo, hi int) {
	return v.cfg.MinIterations, v.cfg.MaxIterationsLimit
}

// SetAnimated turns continuous redraw on or off.
func (v *Viewer) SetAnimated(animated bool) {
	if v.animated == animated {
		return
	}
	v.animated = animated
	Logger().Info("fractal: animation", slog.Bool("animated", animated))
	if animated {
		v.RequestRedraw()
	}
}

// Animated reports whether continuous redraw is on.
func (v *Viewer) Animated() bool {
	return v.animated
}

// OnRedraw registers fn to be called whenever the view needs a new frame.
// Hosts coalesce the requests.
func (v *Viewer) OnRedraw(fn func()) {
	if fn != nil {
		v.redrawHooks = append(v.redrawHooks, fn)
	}
}

// OnFPS registers fn to receive every published frame rate.
func (v *Viewer) OnFPS(fn func(fps int)) {
	v.sampler.OnFPS(fn)
}

// RequestRedraw notifies the redraw observers.
func (v *Viewer) RequestRedraw() {
	for _, fn := range v.redrawHooks {
		fn()
	}
}

// Viewport returns a copy of the current view state.
func (v *Viewer) Viewport() Viewport {
	return v.vp
}

// PanState returns the interaction state.
func (v *Viewer) PanState() PanState {
	return v.ctrl.State()
}

// Frames returns the frames counted in the current sampling window.
func (v *Viewer) Frames() int {
	return v.sampler.Frames()
}

// FPS returns the last published frame rate.
func (v *Viewer) FPS() int {
	return v.sampler.FPS()
}

// Close releases the program and device with the graphics context current.
// It is safe to call more than once.
func (v *Viewer) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	release := v.opts.binder.MakeCurrent()
	defer release()
	if v.program != nil {
		v.program.Destroy()
		v.program = nil
	}
	if v.device != nil {
		v.device.Destroy()
		v.device = nil
	}
	Logger().Info("fractal: viewer closed")
	return nil
}

func (v *Viewer) linked() bool {
	return v.program != nil && v.program.Linked()
}

func (v *Viewer) redrawIf(changed bool) {
	if changed {
		v.RequestRedraw()
	}
}
