package fractal

// MouseButton identifies a pointer button. Only ButtonPrimary drives the
// viewer; the others exist so hosts can forward every press unfiltered.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

// Buttons is the set of pointer buttons held during a move event.
type Buttons uint8

// ButtonsOf builds a button set.
func ButtonsOf(buttons ...MouseButton) Buttons {
	var b Buttons
	for _, btn := range buttons {
		b |= 1 << uint(btn)
	}
	return b
}

// Has reports whether btn is in the set.
func (b Buttons) Has(btn MouseButton) bool {
	return b&(1<<uint(btn)) != 0
}

// PanState is the state of the interaction state machine.
type PanState int

const (
	// Idle is the resting state: no drag in progress.
	Idle PanState = iota

	// Panning means the primary button went down over the surface and every
	// move with the button still held drags the view.
	Panning
)

// String returns the state name.
func (s PanState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Panning:
		return "Panning"
	default:
		return "PanState(?)"
	}
}

// Controller turns pointer and wheel events into viewport mutations.
//
// Every handler returns true when it changed the viewport, which is the
// caller's cue to request a redraw.
type Controller struct {
	vp     *Viewport
	factor float64
	state  PanState
	last   Point
}

// NewController creates a controller mutating vp. A factor <= 1 selects
// ZoomFactor.
func NewController(vp *Viewport, factor float64) *Controller {
	if factor <= 1 {
		factor = ZoomFactor
	}
	return &Controller{vp: vp, factor: factor}
}

// State returns the current pan state.
func (c *Controller) State() PanState {
	return c.state
}

// Press handles a button press. A primary press enters Panning and records
// the anchor position; nothing is mutated yet.
func (c *Controller) Press(btn MouseButton, pos Point) bool {
	if btn != ButtonPrimary {
		return false
	}
	c.state = Panning
	c.last = pos
	return false
}

// Move handles pointer motion. In Panning with the primary button held the
// view is dragged by the delta since the previous position. A move that
// arrives in Panning without the primary button held (the release happened
// outside the surface) returns to Idle.
func (c *Controller) Move(held Buttons, pos Point) bool {
	if c.state != Panning {
		return false
	}
	if !held.Has(ButtonPrimary) {
		c.state = Idle
		return false
	}
	delta := pos.Sub(c.last)
	c.last = pos
	if delta == (Point{}) {
		return false
	}
	c.Pan(delta)
	return true
}

// Release handles a button release. A primary release returns to Idle.
func (c *Controller) Release(btn MouseButton, _ Point) bool {
	if btn == ButtonPrimary {
		c.state = Idle
	}
	return false
}

// Scroll handles a vertical wheel event at pos. A positive delta zooms in,
// a negative delta zooms out and zero is ignored. Scrolling works in any
// pan state.
func (c *Controller) Scroll(delta float64, pos Point) bool {
	switch {
	case delta > 0:
		c.ZoomAt(pos, c.factor)
	case delta < 0:
		c.ZoomAt(pos, 1/c.factor)
	default:
		return false
	}
	return true
}

// Pan moves the view by a pixel delta. The offset moves against the delta
// so the content appears grabbed by the cursor.
func (c *Controller) Pan(delta Point) {
	c.vp.Offset = c.vp.Offset.Sub(PixelDeltaToFractalDelta(delta, c.vp.Resolution, c.vp.Zoom))
}

// ZoomAt multiplies the zoom by factor and shifts the offset so the
// fractal-space point under pos stays under pos.
func (c *Controller) ZoomAt(pos Point, factor float64) {
	before := c.vp.PixelToFractal(pos)
	c.vp.Zoom *= factor
	after := c.vp.PixelToFractal(pos)
	c.vp.Offset = c.vp.Offset.Add(before.Sub(after))
}
