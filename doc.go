// Package fractal is the engine of an interactive GPU Mandelbrot viewer.
//
// # Overview
//
// The fractal itself is evaluated per pixel by a fragment shader drawn over
// a full-screen quad. This package owns everything around that draw call:
// the view state, the mapping between screen pixels and fractal space under
// pan and zoom, the per-frame uniform upload, and frame-rate sampling.
//
// # Quick Start
//
//	import "github.com/gogpu/fractal"
//
//	v, err := fractal.NewViewer(fractal.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	v.Init(program, device)    // e.g. a backend/wgpu Renderer for both
//	v.OnRedraw(app.RequestRedraw)
//	v.OnFPS(panel.SetFPS)
//
//	// From the host's event callbacks:
//	v.Resize(w, h)
//	v.PointerPress(fractal.ButtonPrimary, x, y)
//	v.Wheel(dy, x, y)
//
//	// From the host's paint callback:
//	if err := v.Frame(); err != nil { ... }
//
// # Coordinates
//
// One screen height spans 2/zoom fractal units and the horizontal axis is
// stretched by the aspect ratio, so the fractal is never distorted. Zooming
// keeps the fractal point under the cursor fixed.
//
// # Uniforms
//
// Shaders declare five uniforms by name: resolution (vec2), offset (vec2),
// zoom (f32), time (f32) and maxIterations (i32). A program that lacks one
// of them still renders; the missing value is simply not uploaded.
//
// # Backends and hosts
//
// Subpackages provide the collaborators:
//   - shader: embedded WGSL and Kage sources, compilation and reflection
//   - backend: host registry used by cmd/fractalview
//   - backend/wgpu: Program and Device on the gogpu/wgpu HAL
//   - hud: iteration control and the FPS label
//   - integration/gogpuview: gogpu window host
//   - integration/ebitenview: ebiten window host
//
// # Logging
//
// The package is silent by default. Install a logger with SetLogger.
package fractal
