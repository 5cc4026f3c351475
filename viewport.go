package fractal

// Viewport defaults applied at viewer construction.
const (
	DefaultWidth         = 640
	DefaultHeight        = 480
	DefaultZoom          = 1.0
	DefaultMaxIterations = 100

	// MinIterations and MaxIterationsLimit bound the iteration parameter
	// unless a Config overrides the range.
	MinIterations      = 10
	MaxIterationsLimit = 2000

	// ZoomFactor is the multiplicative zoom step for one wheel notch.
	ZoomFactor = 1.25
)

// Viewport is the view state the shader is rendered with.
//
// Resolution components are always >= 1 once a surface has been realized.
// Zoom is kept positive by only ever multiplying or dividing it by a
// factor greater than one.
type Viewport struct {
	// Resolution is the pixel width and height of the drawable surface.
	Resolution Point

	// Offset is the fractal-space point mapped to the screen center.
	Offset Point

	// Zoom scales fractal space: one screen height spans 2/Zoom units.
	Zoom float64

	// MaxIterations is the shader iteration cap.
	MaxIterations int
}

// DefaultViewport returns the state a viewer starts with:
// 640x480, centered on the origin, zoom 1, 100 iterations.
func DefaultViewport() Viewport {
	return Viewport{
		Resolution:    Pt(DefaultWidth, DefaultHeight),
		Offset:        Pt(0, 0),
		Zoom:          DefaultZoom,
		MaxIterations: DefaultMaxIterations,
	}
}

// Aspect returns width divided by height.
func (v Viewport) Aspect() float64 {
	return v.Resolution.X / v.Resolution.Y
}

// PixelToFractal maps a pixel position using this viewport.
func (v Viewport) PixelToFractal(pos Point) Point {
	return PixelToFractal(pos, v.Resolution, v.Offset, v.Zoom)
}

// clampDimension keeps a surface dimension usable as a divisor.
func clampDimension(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// clampIterations limits n to [lo, hi].
func clampIterations(n, lo, hi int) int {
	switch {
	case n < lo:
		return lo
	case n > hi:
		return hi
	default:
		return n
	}
}
