// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"encoding/binary"
	"math"
)

// Block is the CPU copy of a uniform buffer laid out by a Layout.
// Writes mark it dirty; the owner uploads Bytes and calls MarkClean.
type Block struct {
	layout *Layout
	data   []byte
	dirty  bool
}

// NewBlock creates a zeroed block of layout.BufferSize bytes.
func NewBlock(layout *Layout) *Block {
	return &Block{
		layout: layout,
		data:   make([]byte, layout.BufferSize()),
		dirty:  true,
	}
}

// Layout returns the block's layout.
func (b *Block) Layout() *Layout { return b.layout }

// Bytes returns the staged contents. The slice is owned by the block.
func (b *Block) Bytes() []byte { return b.data }

// Dirty reports whether the block changed since the last MarkClean.
func (b *Block) Dirty() bool { return b.dirty }

// MarkClean records that Bytes has been uploaded.
func (b *Block) MarkClean() { b.dirty = false }

// SetVec2 writes two f32 values at byte offset off.
func (b *Block) SetVec2(off int, x, y float32) {
	if !b.fits(off, 8) {
		return
	}
	b.putF32(off, x)
	b.putF32(off+4, y)
}

// SetFloat writes an f32 at byte offset off.
func (b *Block) SetFloat(off int, v float32) {
	if !b.fits(off, 4) {
		return
	}
	b.putF32(off, v)
}

// SetInt writes an i32 at byte offset off.
func (b *Block) SetInt(off int, v int32) {
	if !b.fits(off, 4) {
		return
	}
	b.put32(off, uint32(v))
}

func (b *Block) fits(off, n int) bool {
	return off >= 0 && off+n <= len(b.data)
}

func (b *Block) putF32(off int, v float32) {
	b.put32(off, math.Float32bits(v))
}

func (b *Block) put32(off int, v uint32) {
	if binary.LittleEndian.Uint32(b.data[off:]) == v {
		return
	}
	binary.LittleEndian.PutUint32(b.data[off:], v)
	b.dirty = true
}
