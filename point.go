package fractal

import "math"

// Point represents a 2D point or vector. It is used for pixel positions,
// pixel deltas, surface resolutions and fractal-space coordinates alike.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Neg returns the negation of the point.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Hypot(d.X, d.Y)
}

// Float32 returns both components narrowed to float32, the precision
// shader uniforms are uploaded with.
func (p Point) Float32() (x, y float32) {
	return float32(p.X), float32(p.Y)
}
