package fractal

import "time"

// Option configures a Viewer during creation.
//
// Example:
//
//	// Deterministic time for tests
//	v, err := fractal.NewViewer(cfg, fractal.WithClock(clock))
type Option func(*viewerOptions)

// viewerOptions holds the injected collaborators of a Viewer.
type viewerOptions struct {
	clock     Clock
	wallClock func() time.Time
	binder    ContextBinder
}

// defaultOptions returns the default viewer options.
func defaultOptions() viewerOptions {
	return viewerOptions{
		clock:     systemClock{},
		wallClock: time.Now,
		binder:    nopBinder{},
	}
}

// WithClock sets the monotonic clock the frame-rate sampler reads.
func WithClock(c Clock) Option {
	return func(o *viewerOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithWallClock sets the wall-clock source of the time uniform.
func WithWallClock(now func() time.Time) Option {
	return func(o *viewerOptions) {
		if now != nil {
			o.wallClock = now
		}
	}
}

// WithContextBinder sets how the viewer makes the graphics context current
// for work outside Frame: out-of-cadence uniform pushes on resize and
// teardown.
func WithContextBinder(b ContextBinder) Option {
	return func(o *viewerOptions) {
		if b != nil {
			o.binder = b
		}
	}
}
