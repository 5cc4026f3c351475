package fractal

import "fmt"

// Config holds the viewer settings a host starts with.
//
// Build one from DefaultConfig and the With methods:
//
//	cfg := fractal.DefaultConfig().
//		WithSize(1280, 720).
//		WithMaxIterations(500)
type Config struct {
	// Title is the window title hosts use.
	Title string

	// Width and Height are the initial surface size in pixels.
	Width, Height int

	// MaxIterations is the initial iteration cap.
	MaxIterations int

	// MinIterations and MaxIterationsLimit bound SetMaxIterations.
	MinIterations      int
	MaxIterationsLimit int

	// ZoomFactor is the zoom step per wheel notch. Must be > 1.
	ZoomFactor float64

	// Animated starts the viewer redrawing continuously.
	Animated bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Title:              "Mandelbrot",
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		MaxIterations:      DefaultMaxIterations,
		MinIterations:      MinIterations,
		MaxIterationsLimit: MaxIterationsLimit,
		ZoomFactor:         ZoomFactor,
		Animated:           true,
	}
}

// WithTitle returns a copy with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy with the initial surface size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithMaxIterations returns a copy with the initial iteration cap set.
func (c Config) WithMaxIterations(n int) Config {
	c.MaxIterations = n
	return c
}

// WithIterationRange returns a copy with the iteration bounds set.
func (c Config) WithIterationRange(lo, hi int) Config {
	c.MinIterations = lo
	c.MaxIterationsLimit = hi
	return c
}

// WithZoomFactor returns a copy with the wheel zoom step set.
func (c Config) WithZoomFactor(f float64) Config {
	c.ZoomFactor = f
	return c
}

// WithAnimated returns a copy with continuous redraw enabled or disabled.
func (c Config) WithAnimated(animated bool) Config {
	c.Animated = animated
	return c
}

// Validate reports the first invalid setting. The initial iteration cap
// is not validated against the range; the viewer clamps it.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MinIterations < 1:
		return fmt.Errorf("%w: min iterations %d", ErrInvalidConfig, c.MinIterations)
	case c.MaxIterationsLimit < c.MinIterations:
		return fmt.Errorf("%w: iteration range [%d, %d]",
			ErrInvalidConfig, c.MinIterations, c.MaxIterationsLimit)
	case c.ZoomFactor <= 1:
		return fmt.Errorf("%w: zoom factor %g", ErrInvalidConfig, c.ZoomFactor)
	}
	return nil
}
