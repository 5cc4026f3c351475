package hud

// TickInterval is the iteration step of one coarse control step.
const TickInterval = 50

// IterationControl is the iteration slider: an integer held within
// [Min, Max] with observers notified on change.
type IterationControl struct {
	min, max int
	value    int
	onChange []func(int)
}

// NewIterationControl creates a control over [lo, hi] starting at value,
// clamped. hi below lo is raised to lo.
func NewIterationControl(lo, hi, value int) *IterationControl {
	if hi < lo {
		hi = lo
	}
	c := &IterationControl{min: lo, max: hi}
	c.value = c.clamp(value)
	return c
}

// Min returns the lower bound.
func (c *IterationControl) Min() int { return c.min }

// Max returns the upper bound.
func (c *IterationControl) Max() int { return c.max }

// Value returns the current value.
func (c *IterationControl) Value() int { return c.value }

// OnChange registers fn to be called with every new value.
func (c *IterationControl) OnChange(fn func(int)) {
	if fn != nil {
		c.onChange = append(c.onChange, fn)
	}
}

// Set clamps v into range and stores it. Observers run only when the value
// actually changes. It returns the stored value.
func (c *IterationControl) Set(v int) int {
	v = c.clamp(v)
	if v == c.value {
		return v
	}
	c.value = v
	for _, fn := range c.onChange {
		fn(v)
	}
	return v
}

// Step moves the value by delta.
func (c *IterationControl) Step(delta int) int {
	return c.Set(c.value + delta)
}

// StepTicks moves the value by n tick intervals.
func (c *IterationControl) StepTicks(n int) int {
	return c.Step(n * TickInterval)
}

// Fraction returns the value's position in the range, 0 to 1.
func (c *IterationControl) Fraction() float64 {
	if c.max == c.min {
		return 0
	}
	return float64(c.value-c.min) / float64(c.max-c.min)
}

func (c *IterationControl) clamp(v int) int {
	return max(c.min, min(v, c.max))
}
