// Package backend selects the host that runs the fractal viewer.
//
// A host owns the window, the GPU device and the event loop. Hosts
// register themselves from init() and are selected at runtime:
//
//	import (
//		_ "github.com/gogpu/fractal/integration/ebitenview"
//		_ "github.com/gogpu/fractal/integration/gogpuview"
//	)
//
//	// Run the best available host
//	err := backend.Run("", fractal.DefaultConfig())
//
//	// Or request a specific one
//	err := backend.Run("ebiten", cfg)
//
// # Available Hosts
//
// - "gogpu": WebGPU via gogpu/wgpu, WGSL shader compiled with naga
// - "ebiten": Ebitengine, Kage shader
//
// The WebGPU renderer shared by GPU hosts lives in backend/wgpu.
package backend
