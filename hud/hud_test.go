package hud

import (
	"reflect"
	"testing"

	"github.com/gogpu/fractal"
)

func TestIterationControl_Clamp(t *testing.T) {
	tests := []struct {
		name string
		set  int
		want int
	}{
		{"below", 5, 10},
		{"above", 5000, 2000},
		{"lower bound", 10, 10},
		{"upper bound", 2000, 2000},
		{"inside", 640, 640},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewIterationControl(fractal.MinIterations, fractal.MaxIterationsLimit, 100)
			if got := c.Set(tt.set); got != tt.want {
				t.Errorf("Set(%d) = %d, want %d", tt.set, got, tt.want)
			}
			if c.Value() != tt.want {
				t.Errorf("Value() = %d, want %d", c.Value(), tt.want)
			}
		})
	}
}

func TestIterationControl_InitialClamp(t *testing.T) {
	c := NewIterationControl(10, 2000, 1)
	if c.Value() != 10 {
		t.Errorf("Value() = %d, want 10", c.Value())
	}
	c = NewIterationControl(50, 20, 30)
	if c.Min() != 50 || c.Max() != 50 || c.Value() != 50 {
		t.Errorf("inverted range = [%d, %d] value %d", c.Min(), c.Max(), c.Value())
	}
}

func TestIterationControl_Steps(t *testing.T) {
	c := NewIterationControl(10, 2000, 100)
	var seen []int
	c.OnChange(func(v int) { seen = append(seen, v) })

	c.Step(10)
	c.StepTicks(2)
	c.StepTicks(-100)
	c.Step(-1)

	want := []int{110, 210, 10}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("changes = %v, want %v", seen, want)
	}
}

func TestIterationControl_Fraction(t *testing.T) {
	c := NewIterationControl(0, 200, 50)
	if f := c.Fraction(); f != 0.25 {
		t.Errorf("Fraction() = %v, want 0.25", f)
	}
	if f := NewIterationControl(5, 5, 5).Fraction(); f != 0 {
		t.Errorf("empty range Fraction() = %v", f)
	}
}

func newTestPanel(t *testing.T) *Panel {
	t.Helper()
	p, err := NewPanel()
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPanel_Text(t *testing.T) {
	p := newTestPanel(t)
	p.SetIterations(1000)
	p.SetFPS(60)
	if got, want := p.Text(), "Iterations: 1,000\nFPS: 60"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestPanel_Dirty(t *testing.T) {
	p := newTestPanel(t)
	p.SetIterations(100)
	_ = p.Image()
	if p.Dirty() {
		t.Fatal("Image() did not clear dirty")
	}
	p.SetIterations(100)
	p.SetFPS(0)
	if p.Dirty() {
		t.Error("unchanged values marked the panel dirty")
	}
	p.SetFPS(59)
	if !p.Dirty() {
		t.Error("SetFPS did not mark the panel dirty")
	}
}

func TestPanel_Image(t *testing.T) {
	p := newTestPanel(t)
	p.SetIterations(2000)
	p.SetFPS(144)

	w, h := p.Size()
	if w <= 2*Padding || h <= 2*Padding {
		t.Fatalf("Size() = %dx%d", w, h)
	}
	img := p.Image()
	if img == nil {
		t.Fatal("Image() returned nil")
	}
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		t.Errorf("image bounds %v, want %dx%d", b, w, h)
	}
}

func TestPanel_Bind(t *testing.T) {
	p := newTestPanel(t)
	v, err := fractal.NewViewer(fractal.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctrl := NewIterationControl(10, 2000, v.MaxIterations())
	p.Bind(v, ctrl)

	if p.Iterations() != 100 {
		t.Errorf("Iterations() = %d, want 100", p.Iterations())
	}
	ctrl.Set(750)
	if p.Iterations() != 750 {
		t.Errorf("Iterations() after Set = %d, want 750", p.Iterations())
	}
}

func TestApply(t *testing.T) {
	v, err := fractal.NewViewer(fractal.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c := NewIterationControl(10, 2000, v.MaxIterations())
	Connect(v, c)

	tests := []struct {
		action  Action
		want    int
		changed bool
	}{
		{ActionIterationsUp, 110, true},
		{ActionIterationsPageUp, 160, true},
		{ActionIterationsDown, 150, true},
		{ActionIterationsPageDown, 100, true},
		{ActionNone, 100, false},
	}
	for _, tt := range tests {
		if changed := Apply(tt.action, v, c); changed != tt.changed {
			t.Errorf("Apply(%v) changed = %v, want %v", tt.action, changed, tt.changed)
		}
		if v.MaxIterations() != tt.want {
			t.Errorf("after %v MaxIterations() = %d, want %d", tt.action, v.MaxIterations(), tt.want)
		}
	}

	if !Apply(ActionToggleAnimation, v, c) || v.Animated() {
		t.Error("toggle did not stop animation")
	}
	Apply(ActionToggleAnimation, v, c)
	if !v.Animated() {
		t.Error("second toggle did not restart animation")
	}
}

func TestPanel_MarkClean(t *testing.T) {
	p := newTestPanel(t)
	if !p.Dirty() {
		t.Fatal("new panel should be dirty")
	}
	p.MarkClean()
	if p.Dirty() {
		t.Error("MarkClean did not clear dirty")
	}
}
