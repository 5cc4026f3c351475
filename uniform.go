package fractal

import (
	"log/slog"
	"time"
)

// Uniform names the fragment shader declares. Programs resolve these names
// to locations; a name the shader lacks (for example one the compiler
// optimized away) simply has no location.
const (
	UniformResolution    = "resolution"
	UniformOffset        = "offset"
	UniformZoom          = "zoom"
	UniformTime          = "time"
	UniformMaxIterations = "maxIterations"
)

// UniformNames lists every uniform the viewer writes, in upload order.
var UniformNames = []string{
	UniformResolution,
	UniformOffset,
	UniformZoom,
	UniformTime,
	UniformMaxIterations,
}

// timePeriod bounds the time uniform so it stays exactly representable
// as float32. 62830 ms is 20π seconds, rounded.
const timePeriod = 2 * 31415

// TimePhase returns the value of the time uniform for t: wall-clock
// milliseconds since the Unix epoch modulo 62830.
func TimePhase(t time.Time) float32 {
	ms := t.UnixMilli() % timePeriod
	if ms < 0 {
		ms += timePeriod
	}
	return float32(ms)
}

// slot is a resolved uniform location, ok == false when absent.
type slot struct {
	loc UniformLocation
	ok  bool
}

// uniformSlots caches the locations of the five uniforms.
type uniformSlots struct {
	resolution    slot
	offset        slot
	zoom          slot
	time          slot
	maxIterations slot
}

// lookupSlots resolves every uniform name once. A nil or unlinked program
// yields an empty set.
func lookupSlots(p Program) uniformSlots {
	var s uniformSlots
	if p == nil || !p.Linked() {
		return s
	}
	find := func(name string) slot {
		loc, ok := p.UniformLocation(name)
		Logger().Debug("fractal: uniform slot",
			slog.String("name", name),
			slog.Int("location", int(loc)),
			slog.Bool("present", ok))
		return slot{loc: loc, ok: ok}
	}
	s.resolution = find(UniformResolution)
	s.offset = find(UniformOffset)
	s.zoom = find(UniformZoom)
	s.time = find(UniformTime)
	s.maxIterations = find(UniformMaxIterations)
	return s
}

// sync uploads the viewport state and the time phase. The program must be
// bound. Absent slots are skipped; an unlinked program is left untouched.
func (s *uniformSlots) sync(p Program, vp *Viewport, now time.Time) {
	if p == nil || !p.Linked() {
		return
	}
	if s.resolution.ok {
		x, y := vp.Resolution.Float32()
		p.SetVec2(s.resolution.loc, x, y)
	}
	if s.offset.ok {
		x, y := vp.Offset.Float32()
		p.SetVec2(s.offset.loc, x, y)
	}
	if s.zoom.ok {
		p.SetFloat(s.zoom.loc, float32(vp.Zoom))
	}
	if s.time.ok {
		p.SetFloat(s.time.loc, TimePhase(now))
	}
	if s.maxIterations.ok {
		p.SetInt(s.maxIterations.loc, int32(vp.MaxIterations))
	}
}
