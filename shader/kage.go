// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrKageParse wraps Kage syntax errors.
var ErrKageParse = errors.New("shader: kage parse failed")

// KageUniform is a uniform variable declared by a Kage program.
type KageUniform struct {
	// Name is the exported Kage identifier, e.g. "MaxIterations".
	Name string

	// Type is the Kage type, e.g. "vec2", "float", "int".
	Type string
}

// KageLayout lists the uniforms of a Kage program in declaration order.
type KageLayout struct {
	Uniforms []KageUniform
}

// Lookup resolves a contract uniform name ("maxIterations") to its index in
// Uniforms.
func (l *KageLayout) Lookup(name string) (int, bool) {
	want := KageName(name)
	for i, u := range l.Uniforms {
		if u.Name == want {
			return i, true
		}
	}
	return -1, false
}

// KageName returns the exported Kage identifier for a uniform name.
// Kage only treats exported package variables as uniforms.
func KageName(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	if n == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[n:]
}

// ReflectKage parses Kage source, which is Go syntax, and returns its
// uniforms: the exported top-level variables.
func ReflectKage(src string) (*KageLayout, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptySource
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "fractal.kage", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKageParse, err)
	}

	layout := &KageLayout{}
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			typ := exprString(vs.Type)
			for _, id := range vs.Names {
				if !id.IsExported() {
					continue
				}
				layout.Uniforms = append(layout.Uniforms, KageUniform{Name: id.Name, Type: typ})
			}
		}
	}
	return layout, nil
}

func exprString(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		return "[" + exprString(t.Len) + "]" + exprString(t.Elt)
	case *ast.BasicLit:
		return t.Value
	default:
		return ""
	}
}
