/*
NAME
  inter.go

DESCRIPTION
  inter.go implements the RMV inter plane codec: per-block motion
  compensation with the four decoder-recognized block flags (perfect
  match, zero fill, predicted-with-residual and raw-direct). Grounded in
  decode_inter_plane and encode_inter_plane in
  _examples/original_source/libavcodec/rmv.c and rmvenc.c.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// Package inter implements the RMV inter plane codec: block motion
// compensation driven by a 3-byte-per-block motion vector table and,
// for some block modes, a fixed-size residual or raw payload.
package inter

import (
	"github.com/deepvideo/rmv/internal/bitio"
	"github.com/deepvideo/rmv/internal/plane"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

// Block flags, matching RMV_BLOCK_*. Exactly one is set per block; the
// decoder tests them in this order (spec.md section 4.4's precedence
// table), so a stream that (incorrectly) sets more than one bit is
// still handled deterministically.
const (
	FlagPerfect     = 1
	FlagErrorDirect = 2
	FlagZero        = 4
	FlagDirect      = 8
	FlagErrorIndex  = 16
)

// PayloadSize is the number of residual or raw bytes a PERFECT/ZERO-free
// block contributes to the plane's payload section.
const PayloadSize = plane.BlockSize * plane.BlockSize

// MVRecord is the 3-byte wire form of one block's motion vector: a
// signed X offset, a signed Y offset, and a block flag mask.
type MVRecord struct {
	DX, DY int8
	Flags  byte
}

// EncodedSize returns the number of bytes Encode will write for an inter
// plane with bw*bh blocks, given the number of blocks carrying a
// payload (PERFECT and ZERO blocks carry none).
func EncodedSize(bw, bh, payloadBlocks int) int {
	const headerAndFooter = 1 + 1 // 'P', 'E'
	return headerAndFooter + bw*bh*3 + payloadBlocks*PayloadSize
}

// Encode writes a single inter-coded plane (header, MV table, payloads,
// footer) to w. mvs must have bw*bh entries in raster block order;
// payload(mv, idx) is called once per block, in the same order, and
// must return the block's residual/raw payload (PayloadSize bytes) for
// FlagErrorDirect or FlagDirect, or nil for FlagPerfect/FlagZero.
func Encode(w *bitio.Writer, mvs []MVRecord, payload func(mv MVRecord, idx int) []byte) {
	w.WriteU8('P')
	for _, mv := range mvs {
		w.WriteI8(mv.DX)
		w.WriteI8(mv.DY)
		w.WriteU8(mv.Flags)
	}
	for i, mv := range mvs {
		if p := payload(mv, i); p != nil {
			w.WriteBytes(p)
		}
	}
	w.WriteU8('E')
}

// Decode reads a single inter-coded plane from r, reconstructing it into
// cur (the plane being decoded) by referencing prev (the previous
// frame's matching plane). prev and cur must share dimensions.
func Decode(r *bitio.Reader, cur, prev *plane.Buffer) error {
	if err := r.ExpectByte('P'); err != nil {
		return err
	}

	bw, bh := plane.Blocks(cur.Width, cur.Height)
	maxX, maxY := cur.Width-plane.BlockSize, cur.Height-plane.BlockSize

	mvs := make([]MVRecord, bw*bh)
	for i := range mvs {
		dx, err := r.ReadI8()
		if err != nil {
			return err
		}
		dy, err := r.ReadI8()
		if err != nil {
			return err
		}
		flags, err := r.ReadU8()
		if err != nil {
			return err
		}
		mvs[i] = MVRecord{DX: dx, DY: dy, Flags: flags}
	}

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			mv := mvs[by*bw+bx]
			x, y := bx*plane.BlockSize, by*plane.BlockSize
			refX, refY := x+int(mv.DX), y+int(mv.DY)

			switch {
			case mv.Flags&FlagPerfect != 0:
				if err := checkBounds(refX, refY, maxX, maxY); err != nil {
					return err
				}
				copyBlock(cur, x, y, prev, refX, refY)

			case mv.Flags&FlagErrorDirect != 0:
				if err := checkBounds(refX, refY, maxX, maxY); err != nil {
					return err
				}
				residual, err := r.ReadBytes(PayloadSize)
				if err != nil {
					return err
				}
				addBlock(cur, x, y, prev, refX, refY, residual)

			case mv.Flags&FlagZero != 0:
				zeroBlock(cur, x, y)

			case mv.Flags&FlagDirect != 0:
				raw, err := r.ReadBytes(PayloadSize)
				if err != nil {
					return err
				}
				setBlock(cur, x, y, raw)

			case mv.Flags&FlagErrorIndex != 0:
				return rmverrors.Wrap(rmverrors.CorruptFrame, "ERROR_INDEX block flag is reserved, block (%d,%d)", bx, by)

			default:
				return rmverrors.Wrap(rmverrors.CorruptFrame, "unrecognised block flags 0x%02x at block (%d,%d)", mv.Flags, bx, by)
			}
		}
	}

	return r.ExpectByte('E')
}

// checkBounds enforces spec.md section 3's invariant: the absolute
// reference origin must lie in [0, width-16] x [0, height-16].
func checkBounds(refX, refY, maxX, maxY int) error {
	if refX < 0 || refX > maxX || refY < 0 || refY > maxY {
		return rmverrors.Wrap(rmverrors.CorruptFrame, "motion vector out of bounds: ref=(%d,%d), max=(%d,%d)", refX, refY, maxX, maxY)
	}
	return nil
}

func copyBlock(dst *plane.Buffer, x, y int, src *plane.Buffer, sx, sy int) {
	for h := 0; h < plane.BlockSize; h++ {
		copy(dst.Row(y+h)[x:x+plane.BlockSize], src.Row(sy+h)[sx:sx+plane.BlockSize])
	}
}

func addBlock(dst *plane.Buffer, x, y int, src *plane.Buffer, sx, sy int, residual []byte) {
	for h := 0; h < plane.BlockSize; h++ {
		dstRow := dst.Row(y + h)[x : x+plane.BlockSize]
		srcRow := src.Row(sy + h)[sx : sx+plane.BlockSize]
		res := residual[h*plane.BlockSize : (h+1)*plane.BlockSize]
		for w := 0; w < plane.BlockSize; w++ {
			dstRow[w] = srcRow[w] + res[w]
		}
	}
}

func zeroBlock(dst *plane.Buffer, x, y int) {
	for h := 0; h < plane.BlockSize; h++ {
		row := dst.Row(y + h)[x : x+plane.BlockSize]
		for w := range row {
			row[w] = 0
		}
	}
}

func setBlock(dst *plane.Buffer, x, y int, raw []byte) {
	for h := 0; h < plane.BlockSize; h++ {
		copy(dst.Row(y+h)[x:x+plane.BlockSize], raw[h*plane.BlockSize:(h+1)*plane.BlockSize])
	}
}
