package fractal

import "testing"

func TestPixelToFractal_Center(t *testing.T) {
	tests := []struct {
		name   string
		res    Point
		offset Point
		zoom   float64
	}{
		{"default", Pt(640, 480), Pt(0, 0), 1},
		{"offset", Pt(640, 480), Pt(-0.75, 0.1), 1},
		{"zoomed", Pt(800, 600), Pt(0.3, -0.2), 37.5},
		{"odd size", Pt(101, 33), Pt(1, 1), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := tt.res.Div(2)
			got := PixelToFractal(center, tt.res, tt.offset, tt.zoom)
			if !approxPt(got, tt.offset, 1e-12) {
				t.Errorf("center maps to %v, want offset %v", got, tt.offset)
			}
		})
	}
}

func TestPixelToFractal_Corners(t *testing.T) {
	res := Pt(400, 400)
	tests := []struct {
		name   string
		pos    Point
		expect Point
	}{
		{"top-left", Pt(0, 0), Pt(-1, 1)},
		{"bottom-right", Pt(400, 400), Pt(1, -1)},
		{"top-right", Pt(400, 0), Pt(1, 1)},
		{"bottom-left", Pt(0, 400), Pt(-1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PixelToFractal(tt.pos, res, Pt(0, 0), 1)
			if !approxPt(got, tt.expect, 1e-12) {
				t.Errorf("PixelToFractal(%v) = %v, want %v", tt.pos, got, tt.expect)
			}
		})
	}
}

func TestPixelToFractal_AspectCorrection(t *testing.T) {
	wide := Pt(800, 400)
	square := Pt(400, 400)

	// Same normalized positions: the horizontal edges and quarter points.
	for _, u := range []float64{0, 0.25, 0.75, 1} {
		w := PixelToFractal(Pt(u*wide.X, wide.Y/2), wide, Pt(0, 0), 1)
		s := PixelToFractal(Pt(u*square.X, square.Y/2), square, Pt(0, 0), 1)
		if !approx(w.X, 2*s.X, 1e-12) {
			t.Errorf("u=%v: wide X = %v, want 2 * %v", u, w.X, s.X)
		}
		if !approx(w.Y, s.Y, 1e-12) {
			t.Errorf("u=%v: wide Y = %v, square Y = %v", u, w.Y, s.Y)
		}
	}
}

func TestFractalToPixel_Inverse(t *testing.T) {
	res := Pt(1024, 576)
	offset := Pt(-0.7436, 0.1318)
	zoom := 123.4

	for _, pos := range []Point{Pt(0, 0), Pt(17, 300), Pt(1024, 576), Pt(512, 288), Pt(-5, 900)} {
		f := PixelToFractal(pos, res, offset, zoom)
		back := FractalToPixel(f, res, offset, zoom)
		if !approxPt(back, pos, 1e-9) {
			t.Errorf("round trip of %v = %v", pos, back)
		}
	}
}

func TestPixelDeltaToFractalDelta(t *testing.T) {
	tests := []struct {
		name   string
		delta  Point
		res    Point
		zoom   float64
		expect Point
	}{
		{"zero", Pt(0, 0), Pt(640, 480), 1, Pt(0, 0)},
		{"right", Pt(240, 0), Pt(640, 480), 1, Pt(1, 0)},
		{"down inverts", Pt(0, 240), Pt(640, 480), 1, Pt(0, -1)},
		{"zoom scales", Pt(240, 240), Pt(640, 480), 4, Pt(0.25, -0.25)},
		{"width ignored", Pt(100, 0), Pt(10000, 200), 1, Pt(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PixelDeltaToFractalDelta(tt.delta, tt.res, tt.zoom)
			if !approxPt(got, tt.expect, 1e-12) {
				t.Errorf("PixelDeltaToFractalDelta(%v) = %v, want %v", tt.delta, got, tt.expect)
			}
		})
	}
}

func TestPixelToFractal_DeltaConsistency(t *testing.T) {
	// Moving the cursor by d pixels moves the fractal point under it by
	// exactly the pan delta.
	res := Pt(800, 600)
	offset := Pt(0.2, -0.4)
	zoom := 3.0
	p := Pt(123, 456)
	d := Pt(31, -17)

	a := PixelToFractal(p, res, offset, zoom)
	b := PixelToFractal(p.Add(d), res, offset, zoom)
	want := PixelDeltaToFractalDelta(d, res, zoom)
	if !approxPt(b.Sub(a), want, 1e-12) {
		t.Errorf("point delta = %v, pan delta = %v", b.Sub(a), want)
	}
}
