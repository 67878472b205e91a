/*
NAME
  intra_test.go

DESCRIPTION
  intra_test.go contains tests for the intra package.

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

package intra

import (
	"testing"

	"github.com/deepvideo/rmv/internal/bitio"
	"github.com/deepvideo/rmv/internal/plane"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

// roundTrip encodes p in the given mode and decodes it into a freshly
// allocated buffer of the same dimensions, returning the result.
func roundTrip(t *testing.T, mode int, p *plane.Buffer) *plane.Buffer {
	t.Helper()
	buf := make([]byte, EncodedSize(mode, p.Stride, p.FullHeight))
	w := bitio.NewWriter(buf)
	Encode(w, mode, p)

	got := plane.NewBuffer(p.Width, p.Height)
	r := bitio.NewReader(w.Bytes())
	if err := Decode(r, got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func assertEqual(t *testing.T, got, want *plane.Buffer) {
	t.Helper()
	for y := 0; y < want.Height; y++ {
		for x := 0; x < want.Width; x++ {
			if g, w := got.At(x, y), want.At(x, y); g != w {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, g, w)
			}
		}
	}
}

// TestRoundTripAllZero covers scenario S1: a 16x16 all-zero frame.
func TestRoundTripAllZero(t *testing.T) {
	for _, mode := range []int{ModeDirect, ModeUpRLE} {
		p := plane.NewBuffer(16, 16)
		got := roundTrip(t, mode, p)
		assertEqual(t, got, p)
	}
}

// TestRoundTripOnePixel covers scenario S2: a single non-zero pixel at
// the plane's origin.
func TestRoundTripOnePixel(t *testing.T) {
	p := plane.NewBuffer(16, 16)
	p.Set(0, 0, 0x55)
	got := roundTrip(t, ModeUpRLE, p)
	assertEqual(t, got, p)
}

// TestRoundTripWidths covers property test 1: round-trip correctness
// for a sample of widths and heights in [1, 256] (every pairing of the
// dims below), for both prediction modes.
func TestRoundTripWidths(t *testing.T) {
	dims := []int{1, 2, 3, 15, 16, 17, 31, 63, 127, 128, 129, 200, 256}
	for _, w := range dims {
		for _, h := range dims {
			for _, mode := range []int{ModeDirect, ModeUpRLE} {
				p := plane.NewBuffer(w, h)
				seed := byte(0)
				for y := 0; y < h; y++ {
					row := p.Row(y)
					for x := 0; x < w; x++ {
						seed += byte(7*x + 13*y + 1)
						row[x] = seed
					}
				}
				got := roundTrip(t, mode, p)
				assertEqual(t, got, p)
			}
		}
	}
}

func TestDecodeRejectsUnknownMode(t *testing.T) {
	buf := make([]byte, 16)
	w := bitio.NewWriter(buf)
	w.WriteU8('P')
	w.WriteU8(7)
	w.WriteU32LE(0)
	w.WriteU8('E')

	r := bitio.NewReader(w.Bytes())
	err := Decode(r, plane.NewBuffer(16, 16))
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("Decode with unknown mode: err = %v, want CorruptFrame", err)
	}
}

func TestDecodeRejectsDoubleBoundaryCrossing(t *testing.T) {
	width, height := 4, 4
	buf := make([]byte, 32)
	w := bitio.NewWriter(buf)
	w.WriteU8('P')
	w.WriteU8(byte(ModeUpRLE))
	w.WriteU32LE(0)
	// A single zero run of length 2*width+1 would have to cross two
	// scan-line boundaries on a width-4 plane.
	w.WriteU8(byte(2*width + 1))
	w.WriteU8('E')

	r := bitio.NewReader(w.Bytes())
	err := Decode(r, plane.NewBuffer(width, height))
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("Decode with double boundary crossing: err = %v, want CorruptFrame", err)
	}
}
