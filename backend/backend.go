package backend

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/fractal"
)

// Common host errors.
var (
	// ErrBackendNotAvailable is returned when a requested host is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Well-known host names.
const (
	BackendGogpu  = "gogpu"
	BackendEbiten = "ebiten"
)

// Host is a windowing and rendering integration that runs a fractal viewer.
//
// Hosts must be registered via Register() and are selected via
// Get() or Default().
type Host interface {
	// Name returns the host identifier (e.g., "gogpu", "ebiten").
	Name() string

	// Run opens a window for cfg and blocks until it is closed.
	Run(cfg fractal.Config) error
}

// Run runs the named host, or the default host if name is empty.
func Run(name string, cfg fractal.Config) error {
	var h Host
	if name == "" {
		h = Default()
	} else {
		h = Get(name)
	}
	if h == nil {
		if name == "" {
			return ErrBackendNotAvailable
		}
		return fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	fractal.Logger().Info("backend: running host", slog.String("name", h.Name()))
	return h.Run(cfg)
}
