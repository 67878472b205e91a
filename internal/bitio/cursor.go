/*
NAME
  cursor.go

DESCRIPTION
  cursor.go provides a byte-granular cursor over a contiguous in-memory
  buffer, in the style of the bit-level reader in
  codec/h264/h264dec/bits, but operating a byte at a time and supporting
  both reading and writing, since the RMV bitstream has no sub-byte
  fields.

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// Package bitio provides a byte-granular reader and writer over a
// contiguous buffer, used by every RMV wire-format package.
package bitio

import (
	"encoding/binary"

	"github.com/deepvideo/rmv/internal/rmverrors"
)

// Reader is a cursor over a read-only byte slice. It never allocates and
// never retains a reference beyond buf; the zero value is not usable,
// use NewReader.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current byte offset into the underlying buffer.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Remaining returns the unread tail of the underlying buffer without
// advancing the cursor.
func (r *Reader) Remaining() []byte { return r.buf[r.pos:] }

// ReadU8 reads a single unsigned byte.
func (r *Reader) ReadU8() (byte, error) {
	if r.Len() < 1 {
		return 0, rmverrors.Wrap(rmverrors.Truncated, "read u8 at offset %d", r.pos)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadI8 reads a single signed byte (two's complement).
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

// ReadU32LE reads a little-endian unsigned 32-bit integer.
func (r *Reader) ReadU32LE() (uint32, error) {
	if r.Len() < 4 {
		return 0, rmverrors.Wrap(rmverrors.Truncated, "read u32le at offset %d", r.pos)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

// ReadBytes reads and returns the next n bytes. The returned slice
// aliases the underlying buffer; callers that need to retain it past
// the Reader's lifetime should copy it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, rmverrors.Wrap(rmverrors.Truncated, "read %d bytes at offset %d", n, r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ExpectByte reads a byte and fails with rmverrors.CorruptFrame (not
// Truncated, unless the buffer is exhausted) if it does not equal want.
func (r *Reader) ExpectByte(want byte) error {
	if r.Len() < 1 {
		return rmverrors.Wrap(rmverrors.Truncated, "expected byte %q at offset %d", want, r.pos)
	}
	got := r.buf[r.pos]
	r.pos++
	if got != want {
		return rmverrors.Wrap(rmverrors.CorruptFrame, "expected byte %q, got %q at offset %d", want, got, r.pos-1)
	}
	return nil
}

// Writer is a cursor over a pre-sized, caller-owned byte slice. Writers
// never grow the buffer: per spec, the encoder pre-sizes its scratch
// buffer to the worst case, so an overrun here is a programming error,
// not a runtime-reported one, and is allowed to panic via the normal
// slice-index-out-of-range path.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns a Writer over a pre-sized buffer. Writes past the
// end of buf panic; callers must size buf generously (see
// rmv.maxPacketSize).
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int { return w.pos }

// Bytes returns the slice of buf written so far.
func (w *Writer) Bytes() []byte { return w.buf[:w.pos] }

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(b byte) {
	w.buf[w.pos] = b
	w.pos++
}

// WriteI8 appends a single signed byte.
func (w *Writer) WriteI8(b int8) {
	w.WriteU8(byte(b))
}

// WriteU32LE appends a little-endian unsigned 32-bit integer.
func (w *Writer) WriteU32LE(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:w.pos+4], v)
	w.pos += 4
}

// WriteBytes appends p verbatim.
func (w *Writer) WriteBytes(p []byte) {
	w.pos += copy(w.buf[w.pos:w.pos+len(p)], p)
}

// Skip reserves n bytes, returning their offset for a later patch (used
// to back-patch the intra plane's size field once it's known).
func (w *Writer) Skip(n int) int {
	start := w.pos
	w.pos += n
	return start
}

// PatchU32LE overwrites 4 bytes at a previously reserved offset (see
// Skip) with a little-endian unsigned 32-bit integer.
func (w *Writer) PatchU32LE(offset int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[offset:offset+4], v)
}
