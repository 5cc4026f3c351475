// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoUniformBlock is returned when a source has no uniform variable of
// the requested struct type.
var ErrNoUniformBlock = errors.New("shader: no uniform block")

// ErrUnsupportedType is returned for uniform members the layout rules here
// do not cover (arrays, matrices, nested structs).
var ErrUnsupportedType = errors.New("shader: unsupported uniform type")

// Type is a scalar or vector uniform member type.
type Type int

const (
	F32 Type = iota
	I32
	U32
	Vec2F32
	Vec3F32
	Vec4F32
	Vec2I32
)

// typeInfo holds WGSL uniform address space alignment and size in bytes.
var typeInfo = map[string]struct {
	t           Type
	align, size int
}{
	"f32":       {F32, 4, 4},
	"i32":       {I32, 4, 4},
	"u32":       {U32, 4, 4},
	"vec2<f32>": {Vec2F32, 8, 8},
	"vec2f":     {Vec2F32, 8, 8},
	"vec3<f32>": {Vec3F32, 16, 12},
	"vec3f":     {Vec3F32, 16, 12},
	"vec4<f32>": {Vec4F32, 16, 16},
	"vec4f":     {Vec4F32, 16, 16},
	"vec2<i32>": {Vec2I32, 8, 8},
	"vec2i":     {Vec2I32, 8, 8},
}

// Field is one member of a uniform struct.
type Field struct {
	Name   string
	Type   Type
	Offset int
	Size   int
	Align  int
}

// Layout describes a uniform struct bound at Group/Binding.
type Layout struct {
	Struct  string
	Var     string
	Group   int
	Binding int
	Fields  []Field

	// Size is the struct size, rounded up to its alignment.
	Size int
}

// BufferSize is Size rounded up to 16 bytes, the minimum uniform buffer
// binding granularity.
func (l *Layout) BufferSize() int {
	return roundUp(l.Size, 16)
}

// Lookup returns the member named name.
func (l *Layout) Lookup(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldAt returns the member starting at byte offset off.
func (l *Layout) FieldAt(off int) (Field, bool) {
	for _, f := range l.Fields {
		if f.Offset == off {
			return f, true
		}
	}
	return Field{}, false
}

var (
	lineComment = regexp.MustCompile(`//[^\n]*`)
	uniformVar  = regexp.MustCompile(
		`@group\(\s*(\d+)\s*\)\s*@binding\(\s*(\d+)\s*\)\s*var<uniform>\s+(\w+)\s*:\s*(\w+)\s*;`)
	member = regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s+)*(\w+)\s*:\s*([\w<>]+)$`)
)

// ReflectWGSL finds the uniform variable of type structName and computes the
// member layout of that struct.
func ReflectWGSL(src, structName string) (*Layout, error) {
	src = lineComment.ReplaceAllString(src, "")

	var layout *Layout
	for _, m := range uniformVar.FindAllStringSubmatch(src, -1) {
		if m[4] != structName {
			continue
		}
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		layout = &Layout{Struct: structName, Var: m[3], Group: group, Binding: binding}
		break
	}
	if layout == nil {
		return nil, fmt.Errorf("%w: var<uniform> of type %s", ErrNoUniformBlock, structName)
	}

	body, err := structBody(src, structName)
	if err != nil {
		return nil, err
	}

	offset, maxAlign := 0, 4
	for _, decl := range strings.Split(body, ",") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		m := member.FindStringSubmatch(decl)
		if m == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, decl)
		}
		info, ok := typeInfo[m[2]]
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedType, m[1], m[2])
		}
		offset = roundUp(offset, info.align)
		layout.Fields = append(layout.Fields, Field{
			Name:   m[1],
			Type:   info.t,
			Offset: offset,
			Size:   info.size,
			Align:  info.align,
		})
		offset += info.size
		maxAlign = max(maxAlign, info.align)
	}
	layout.Size = roundUp(offset, maxAlign)
	return layout, nil
}

// structBody returns the text between the braces of struct name.
func structBody(src, name string) (string, error) {
	re := regexp.MustCompile(`struct\s+` + regexp.QuoteMeta(name) + `\s*\{([^}]*)\}`)
	m := re.FindStringSubmatch(src)
	if m == nil {
		return "", fmt.Errorf("%w: struct %s not found", ErrNoUniformBlock, name)
	}
	return m[1], nil
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}
