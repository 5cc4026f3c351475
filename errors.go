package fractal

import "errors"

// Sentinel errors. Wrapped errors carry details; test with errors.Is.
var (
	// ErrInvalidConfig is returned by Config.Validate and NewViewer.
	ErrInvalidConfig = errors.New("fractal: invalid config")

	// ErrClosed is returned by Frame after Close.
	ErrClosed = errors.New("fractal: viewer closed")

	// ErrPresent wraps a device submission failure returned by Frame.
	ErrPresent = errors.New("fractal: present failed")
)
