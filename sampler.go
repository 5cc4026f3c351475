package fractal

import (
	"math"
	"time"
)

// SampleWindow is the length of one frame-rate sampling window.
const SampleWindow = time.Second

// Clock is the monotonic time source of a Sampler. time.Now readings carry
// a monotonic component, so Sub between two of them is immune to wall-clock
// adjustments.
type Clock interface {
	Now() time.Time
}

// systemClock reads time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Sampler measures frames per second once per sampling window.
//
// Frames are counted with Tick. Every frame is bracketed by Begin and a
// deferred Scope.End; the end of the scope checks whether the window has
// elapsed and, if so, publishes the rate to the FPS observers.
//
// A Sampler is owned by a single render goroutine.
type Sampler struct {
	clock       Clock
	windowStart time.Time
	frames      int
	lastFPS     int
	observers   []func(fps int)
}

// NewSampler creates a sampler whose first window starts now.
// A nil clock selects the system clock.
func NewSampler(clock Clock) *Sampler {
	if clock == nil {
		clock = systemClock{}
	}
	return &Sampler{
		clock:       clock,
		windowStart: clock.Now(),
	}
}

// OnFPS registers fn to be called with every published frame rate.
func (s *Sampler) OnFPS(fn func(fps int)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Tick counts one rendered frame in the current window.
func (s *Sampler) Tick() {
	s.frames++
}

// Frames returns the number of frames counted since the window started.
func (s *Sampler) Frames() int {
	return s.frames
}

// FPS returns the last published frame rate, 0 before the first window closes.
func (s *Sampler) FPS() int {
	return s.lastFPS
}

// Begin opens the per-frame measurement scope. The returned scope must be
// ended on every exit path of the frame:
//
//	defer s.Begin().End()
func (s *Sampler) Begin() *Scope {
	return &Scope{sampler: s}
}

// finalize closes the window if it has elapsed. The rate uses the measured
// elapsed time rather than assuming exactly one second.
func (s *Sampler) finalize() {
	now := s.clock.Now()
	elapsed := now.Sub(s.windowStart)
	if elapsed < SampleWindow {
		return
	}
	s.lastFPS = int(math.Round(float64(s.frames) / elapsed.Seconds()))
	s.frames = 0
	s.windowStart = now
	for _, fn := range s.observers {
		fn(s.lastFPS)
	}
}

// Scope is one frame's measurement scope. See Sampler.Begin.
type Scope struct {
	sampler *Sampler
	ended   bool
}

// End runs the window check. Only the first call has an effect.
func (sc *Scope) End() {
	if sc == nil || sc.ended {
		return
	}
	sc.ended = true
	sc.sampler.finalize()
}
