/*
NAME
  plane.go

DESCRIPTION
  plane.go implements the RMV plane buffer manager: three aligned 8-bit
  planes (G, B, R) at padded dimensions, and the current/previous pair
  an encoder or decoder context carries across frames. Grounded in the
  RmvContext/RmvEncContext plane allocation in
  _examples/original_source/libavcodec/rmv.c and rmvenc.c, adapted to
  Go slices instead of malloc'd C arrays.

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// Package plane implements the padded 8-bit plane buffers RMV frames are
// built from, and the three-plane (G, B, R) triples an RMV context
// carries.
package plane

// NumPlanes is the fixed number of planes in an RMV frame: G, B, R.
const NumPlanes = 3

// Plane indices, fixed by the wire format (spec.md section 3).
const (
	G = 0
	B = 1
	R = 2
)

// BlockSize is the fixed motion-compensation block edge length.
const BlockSize = 16

// Align rounds n up to the next multiple of to.
func Align(n, to int) int {
	if n%to == 0 {
		return n
	}
	return n + (to - n%to)
}

// Buffer is a single padded 8-bit plane. Only the top-left Width x
// Height window carries semantic pixels; the padding to Stride x
// FullHeight simplifies motion-vector range clipping (spec.md section 3).
type Buffer struct {
	Pix        []byte
	Stride     int
	FullHeight int
	Width      int
	Height     int
}

// NewBuffer allocates a zero-initialized plane buffer for a width x
// height image. Per spec.md section 9, the buffer is zero-initialized
// (the reference encoder's memset(plane, stride, full_height) is a bug:
// it fills with the stride value, not zero).
func NewBuffer(width, height int) *Buffer {
	stride := Align(width, BlockSize)
	fullHeight := Align(height, BlockSize)
	return &Buffer{
		Pix:        make([]byte, stride*fullHeight),
		Stride:     stride,
		FullHeight: fullHeight,
		Width:      width,
		Height:     height,
	}
}

// Row returns the slice of Pix backing scan-line y, Stride bytes wide.
func (b *Buffer) Row(y int) []byte {
	off := y * b.Stride
	return b.Pix[off : off+b.Stride]
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) byte {
	return b.Pix[y*b.Stride+x]
}

// Set writes the pixel at (x, y).
func (b *Buffer) Set(x, y int, v byte) {
	b.Pix[y*b.Stride+x] = v
}

// Clear zeroes every byte of the buffer, including padding.
func (b *Buffer) Clear() {
	for i := range b.Pix {
		b.Pix[i] = 0
	}
}

// CopyFrom overwrites b's semantic Width x Height window from src, which
// must have matching dimensions. Padding bytes are left untouched.
func (b *Buffer) CopyFrom(src *Buffer) {
	for y := 0; y < b.Height; y++ {
		copy(b.Row(y)[:b.Width], src.Row(y)[:b.Width])
	}
}

// Triple is the three-plane (G, B, R) frame RMV operates on.
type Triple [NumPlanes]*Buffer

// NewTriple allocates a fresh zero-initialized Triple for a width x
// height frame.
func NewTriple(width, height int) Triple {
	var t Triple
	for i := range t {
		t[i] = NewBuffer(width, height)
	}
	return t
}

// CopyFrom overwrites every plane in t from src.
func (t Triple) CopyFrom(src Triple) {
	for i := range t {
		t[i].CopyFrom(src[i])
	}
}

// Blocks returns the number of motion-compensation blocks per row and
// column for a plane of the given semantic width/height, i.e. bw, bh in
// spec.md section 3: ceil(w/16) x ceil(h/16).
func Blocks(width, height int) (bw, bh int) {
	return (width + BlockSize - 1) / BlockSize, (height + BlockSize - 1) / BlockSize
}
