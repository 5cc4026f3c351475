package hud

import "github.com/gogpu/fractal"

// Action is a keyboard command shared by every host.
type Action int

const (
	ActionNone Action = iota
	ActionToggleAnimation
	ActionIterationsUp
	ActionIterationsDown
	ActionIterationsPageUp
	ActionIterationsPageDown
)

// FineStep is the iteration step of the arrow keys.
const FineStep = 10

// Apply performs a on the viewer and the iteration control. It reports
// whether anything changed.
func Apply(a Action, v *fractal.Viewer, c *IterationControl) bool {
	before := c.Value()
	switch a {
	case ActionToggleAnimation:
		v.SetAnimated(!v.Animated())
		return true
	case ActionIterationsUp:
		c.Step(FineStep)
	case ActionIterationsDown:
		c.Step(-FineStep)
	case ActionIterationsPageUp:
		c.StepTicks(1)
	case ActionIterationsPageDown:
		c.StepTicks(-1)
	default:
		return false
	}
	return c.Value() != before
}

// Connect wires the control to the viewer: control changes set the
// viewer's iteration cap.
func Connect(v *fractal.Viewer, c *IterationControl) {
	c.OnChange(func(n int) { v.SetMaxIterations(n) })
}
