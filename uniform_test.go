package fractal

import (
	"testing"
	"time"
)

func TestTimePhase(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want float32
	}{
		{"epoch", 0, 0},
		{"below period", 62829, 62829},
		{"wraps", 62830, 0},
		{"wraps plus", 62830*1000 + 17, 17},
		{"before epoch", -1, 62829},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimePhase(time.UnixMilli(tt.ms))
			if got != tt.want {
				t.Errorf("TimePhase(%d ms) = %v, want %v", tt.ms, got, tt.want)
			}
		})
	}
}

func TestTimePhase_Bounded(t *testing.T) {
	now := time.Now()
	for i := 0; i < 1000; i++ {
		p := TimePhase(now.Add(time.Duration(i) * 7919 * time.Millisecond))
		if p < 0 || p >= timePeriod {
			t.Fatalf("TimePhase out of range: %v", p)
		}
	}
}

func TestLookupSlots_SkipsAbsent(t *testing.T) {
	p := newMockProgram(true, UniformResolution, UniformZoom, UniformMaxIterations)
	slots := lookupSlots(p)

	vp := DefaultViewport()
	vp.Offset = Pt(0.25, -0.5)
	vp.Zoom = 2
	vp.MaxIterations = 300
	slots.sync(p, &vp, time.UnixMilli(1234))

	if got := p.vec2[UniformResolution]; got != [2]float32{640, 480} {
		t.Errorf("resolution = %v, want [640 480]", got)
	}
	if got := p.floats[UniformZoom]; got != 2 {
		t.Errorf("zoom = %v, want 2", got)
	}
	if got := p.ints[UniformMaxIterations]; got != 300 {
		t.Errorf("maxIterations = %v, want 300", got)
	}
	if _, ok := p.vec2[UniformOffset]; ok {
		t.Error("absent offset uniform was written")
	}
	if _, ok := p.floats[UniformTime]; ok {
		t.Error("absent time uniform was written")
	}
}

func TestLookupSlots_AllPresent(t *testing.T) {
	p := newMockProgram(true, UniformNames...)
	slots := lookupSlots(p)

	vp := DefaultViewport()
	vp.Offset = Pt(-0.75, 0.1)
	slots.sync(p, &vp, time.UnixMilli(62830+500))

	if got := p.vec2[UniformOffset]; got != [2]float32{-0.75, 0.1} {
		t.Errorf("offset = %v", got)
	}
	if got := p.floats[UniformTime]; got != 500 {
		t.Errorf("time = %v, want 500", got)
	}
	if len(p.lookups) != len(UniformNames) {
		t.Errorf("lookups = %v, want one per uniform", p.lookups)
	}
}

func TestUniformSync_Unlinked(t *testing.T) {
	p := newMockProgram(false, UniformNames...)
	slots := lookupSlots(p)
	if len(p.lookups) != 0 {
		t.Errorf("unlinked program was queried: %v", p.lookups)
	}

	vp := DefaultViewport()
	slots.sync(p, &vp, time.Now())
	if p.writes() != 0 {
		t.Errorf("unlinked program received %d uniform writes", p.writes())
	}
}

func TestUniformSync_NilProgram(t *testing.T) {
	slots := lookupSlots(nil)
	vp := DefaultViewport()
	slots.sync(nil, &vp, time.Now())
}
