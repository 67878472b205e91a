/*
NAME
  inter_test.go

DESCRIPTION
  inter_test.go contains tests for the inter package.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

package inter

import (
	"testing"

	"github.com/deepvideo/rmv/internal/bitio"
	"github.com/deepvideo/rmv/internal/plane"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

// TestRoundTripPerfect covers scenario S3: an inter plane with every
// block PERFECT and mv=(0,0) reproduces the previous plane exactly.
func TestRoundTripPerfect(t *testing.T) {
	prev := plane.NewBuffer(32, 32)
	for y := 0; y < 32; y++ {
		row := prev.Row(y)
		for x := 0; x < 32; x++ {
			row[x] = byte(3*x + 5*y)
		}
	}

	bw, bh := plane.Blocks(32, 32)
	mvs := make([]MVRecord, bw*bh)
	for i := range mvs {
		mvs[i] = MVRecord{Flags: FlagPerfect}
	}

	buf := make([]byte, EncodedSize(bw, bh, 0))
	w := bitio.NewWriter(buf)
	Encode(w, mvs, func(MVRecord, int) []byte { return nil })

	cur := plane.NewBuffer(32, 32)
	r := bitio.NewReader(w.Bytes())
	if err := Decode(r, cur, prev); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if g, want := cur.At(x, y), prev.At(x, y); g != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, g, want)
			}
		}
	}
}

// TestRoundTripErrorDirect covers property test 2's ERROR_DIRECT case:
// the residual is exact mod 256, so the decoded block equals the source
// regardless of what the "previous" reference actually holds.
func TestRoundTripErrorDirect(t *testing.T) {
	prev := plane.NewBuffer(16, 16)
	want := plane.NewBuffer(16, 16)
	residual := make([]byte, PayloadSize)
	for i := range prev.Pix {
		prev.Pix[i] = byte(i * 7)
	}
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			v := byte(i*16 + j)
			want.Set(j, i, v)
			residual[i*16+j] = v - prev.At(j, i)
		}
	}

	mvs := []MVRecord{{Flags: FlagErrorDirect}}
	buf := make([]byte, EncodedSize(1, 1, 1))
	w := bitio.NewWriter(buf)
	Encode(w, mvs, func(MVRecord, int) []byte { return residual })

	cur := plane.NewBuffer(16, 16)
	r := bitio.NewReader(w.Bytes())
	if err := Decode(r, cur, prev); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if g, wv := cur.At(x, y), want.At(x, y); g != wv {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, g, wv)
			}
		}
	}
}

// TestDecodeRejectsOutOfBoundsMV covers scenario S6: an MV resolving
// outside [0, w-16] x [0, h-16] on a 16x16 frame must be rejected.
func TestDecodeRejectsOutOfBoundsMV(t *testing.T) {
	prev := plane.NewBuffer(16, 16)
	mvs := []MVRecord{{DX: -128, DY: 0, Flags: FlagPerfect}}

	buf := make([]byte, EncodedSize(1, 1, 0))
	w := bitio.NewWriter(buf)
	Encode(w, mvs, func(MVRecord, int) []byte { return nil })

	cur := plane.NewBuffer(16, 16)
	r := bitio.NewReader(w.Bytes())
	err := Decode(r, cur, prev)
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("Decode with out-of-bounds MV: err = %v, want CorruptFrame", err)
	}
}

func TestDecodeRejectsErrorIndex(t *testing.T) {
	prev := plane.NewBuffer(16, 16)
	mvs := []MVRecord{{Flags: FlagErrorIndex}}

	buf := make([]byte, EncodedSize(1, 1, 0))
	w := bitio.NewWriter(buf)
	Encode(w, mvs, func(MVRecord, int) []byte { return nil })

	cur := plane.NewBuffer(16, 16)
	r := bitio.NewReader(w.Bytes())
	err := Decode(r, cur, prev)
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("Decode with ERROR_INDEX flag: err = %v, want CorruptFrame", err)
	}
}

func TestDecodeRejectsUnknownFlags(t *testing.T) {
	prev := plane.NewBuffer(16, 16)
	mvs := []MVRecord{{Flags: 0}}

	buf := make([]byte, EncodedSize(1, 1, 0))
	w := bitio.NewWriter(buf)
	Encode(w, mvs, func(MVRecord, int) []byte { return nil })

	cur := plane.NewBuffer(16, 16)
	r := bitio.NewReader(w.Bytes())
	err := Decode(r, cur, prev)
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("Decode with no recognised flag: err = %v, want CorruptFrame", err)
	}
}
