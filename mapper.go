package fractal

// PixelDeltaToFractalDelta converts a pointer movement in pixels into the
// equivalent movement in fractal space.
//
// The delta is scaled by 2/(height*zoom) on both axes, so panning is uniform
// regardless of aspect ratio, and the Y axis is inverted because screen Y
// grows downward while fractal Y grows upward. Panning subtracts the result
// from the offset, which makes the content follow the cursor.
//
// The caller guarantees resolution.Y > 0.
func PixelDeltaToFractalDelta(delta, resolution Point, zoom float64) Point {
	scale := 2 / (resolution.Y * zoom)
	return Point{X: delta.X * scale, Y: -delta.Y * scale}
}

// PixelToFractal maps a pixel position to the fractal-space point drawn there.
//
// The position is normalized to device coordinates in [-1, 1] (Y flipped),
// the X axis is stretched by width/height so a non-square surface does not
// distort the fractal, the result is divided by zoom and shifted by offset.
// This is the same mapping the fragment shader evaluates per pixel.
func PixelToFractal(pos, resolution, offset Point, zoom float64) Point {
	ndc := Point{
		X: 2*pos.X/resolution.X - 1,
		Y: 1 - 2*pos.Y/resolution.Y,
	}
	ndc.X *= resolution.X / resolution.Y
	return offset.Add(ndc.Div(zoom))
}

// FractalToPixel is the inverse of PixelToFractal.
func FractalToPixel(p, resolution, offset Point, zoom float64) Point {
	ndc := p.Sub(offset).Mul(zoom)
	ndc.X /= resolution.X / resolution.Y
	return Point{
		X: (ndc.X + 1) * resolution.X / 2,
		Y: (1 - ndc.Y) * resolution.Y / 2,
	}
}
