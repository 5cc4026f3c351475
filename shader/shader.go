// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader holds the fractal shader sources and the tooling backends
// need to turn them into programs: WGSL compilation through naga, uniform
// layout reflection and CPU-side uniform staging.
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
)

// Embedded shader sources.

//go:embed shaders/fractal.wgsl
var fractalWGSL string

//go:embed shaders/fractal.kage
var fractalKage string

// UniformStruct is the name of the WGSL uniform struct.
const UniformStruct = "Params"

// Entry points of the WGSL source.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

var (
	// ErrEmptySource is returned when compiling an empty source.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrCompile wraps naga compilation failures.
	ErrCompile = errors.New("shader: compile failed")

	// ErrMalformedSPIRV is returned when the compiler output is not a
	// whole number of 32-bit words.
	ErrMalformedSPIRV = errors.New("shader: malformed SPIR-V")
)

// FractalWGSL returns the embedded WGSL source.
func FractalWGSL() string { return fractalWGSL }

// FractalKage returns the embedded Kage source.
func FractalKage() string { return fractalKage }

// Module is a compiled WGSL shader.
type Module struct {
	// Source is the WGSL the module was compiled from.
	Source string

	// SPIRV is the compiled code as little-endian 32-bit words.
	SPIRV []uint32

	// Layout is the reflected uniform block.
	Layout *Layout
}

// Compile compiles WGSL to SPIR-V and reflects its uniform block.
// A failure here is what the viewer treats as an unlinked program.
func Compile(src string) (*Module, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptySource
	}

	layout, err := ReflectWGSL(src, UniformStruct)
	if err != nil {
		return nil, err
	}

	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	words, err := toWords(spirvBytes)
	if err != nil {
		return nil, err
	}

	return &Module{Source: src, SPIRV: words, Layout: layout}, nil
}

// toWords converts SPIR-V bytes to little-endian 32-bit words.
func toWords(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}
