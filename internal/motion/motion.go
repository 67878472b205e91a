/*
NAME
  motion.go

DESCRIPTION
  motion.go implements the RMV block motion estimator: the zero-block
  and zero-SAD fast paths, and the clipped full-search fallback.
  Grounded in encode_inter_block in
  _examples/original_source/libavcodec/rmvenc.c, with the asymmetric
  search-window clipping bug described in spec.md section 9 corrected to
  clip both axes the same way.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// Package motion implements RMV's full-search block motion estimator.
package motion

import "github.com/deepvideo/rmv/internal/plane"

// DefaultRange is the search window radius used when a Config does not
// specify one.
const DefaultRange = 4

// MinRange and MaxRange bound a caller-supplied search range.
const (
	MinRange = 1
	MaxRange = 127
)

// ClampRange clips r to [MinRange, MaxRange], substituting DefaultRange
// for a zero or negative value.
func ClampRange(r int) int {
	if r <= 0 {
		r = DefaultRange
	}
	if r < MinRange {
		return MinRange
	}
	if r > MaxRange {
		return MaxRange
	}
	return r
}

// sadFunc is a package-level indirection point for the SAD kernel. It
// defaults to the portable scalar implementation; there is no
// architecture-specific override in this tree (see DESIGN.md: none of
// the retrieved example repos carry a Go assembly SAD/DSP kernel to
// ground one on), but call sites reach the kernel only through this
// variable so one can be added without touching estimator code.
var sadFunc = scalarSAD

// Result describes the chosen encoding for one 16x16 block.
type Result struct {
	DX, DY  int8
	Zero    bool // block is all zero; caller should emit FlagZero
	Perfect bool // co-located block is a perfect match; DX=DY=0
	SAD     int
}

// Estimate finds the best motion vector for the 16x16 block at (x, y) in
// cur against prev, searching a window of the given range around (x, y).
// It implements spec.md section 4.5 with symmetric, inclusive clipping
// of the search window to [0, Width-16] x [0, Height-16], the plane's
// logical bounds rather than its padded ones.
func Estimate(cur, prev *plane.Buffer, x, y, searchRange int) Result {
	if blockIsZero(cur, x, y) {
		return Result{Zero: true}
	}

	coSAD := blockSAD(cur, x, y, prev, x, y)
	if coSAD == 0 {
		return Result{Perfect: true}
	}

	// Clipped to the logical width/height, not the padded stride/full
	// height: inter.Decode rejects a reference origin past width-16 or
	// height-16 (spec.md section 3), so searching into the padding here
	// could produce a motion vector the decoder then refuses.
	maxSX, maxSY := prev.Width-plane.BlockSize, prev.Height-plane.BlockSize

	minSY, maxSYClip := clip(y-searchRange, y+searchRange, maxSY)
	minSX, maxSXClip := clip(x-searchRange, x+searchRange, maxSX)

	bestSAD, bestSX, bestSY := coSAD, x, y

	for sy := minSY; sy <= maxSYClip; sy++ {
		for sx := minSX; sx <= maxSXClip; sx++ {
			if sx == x && sy == y {
				continue // already evaluated as the co-located candidate above
			}
			sad := blockSAD(cur, x, y, prev, sx, sy)
			if sad < bestSAD {
				bestSAD, bestSX, bestSY = sad, sx, sy
				if bestSAD == 0 {
					return Result{DX: int8(bestSX - x), DY: int8(bestSY - y), SAD: 0}
				}
			}
		}
	}

	return Result{DX: int8(bestSX - x), DY: int8(bestSY - y), SAD: bestSAD}
}

func clip(lo, hi, max int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > max {
		hi = max
	}
	return lo, hi
}

func blockIsZero(p *plane.Buffer, x, y int) bool {
	for h := 0; h < plane.BlockSize; h++ {
		row := p.Row(y + h)[x : x+plane.BlockSize]
		for _, v := range row {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

func blockSAD(a *plane.Buffer, ax, ay int, b *plane.Buffer, bx, by int) int {
	return sadFunc(a, ax, ay, b, bx, by)
}

// scalarSAD computes the sum of absolute differences between the 16x16
// blocks at (ax, ay) in a and (bx, by) in b.
func scalarSAD(a *plane.Buffer, ax, ay int, b *plane.Buffer, bx, by int) int {
	sad := 0
	for h := 0; h < plane.BlockSize; h++ {
		ra := a.Row(ay + h)[ax : ax+plane.BlockSize]
		rb := b.Row(by + h)[bx : bx+plane.BlockSize]
		for w := 0; w < plane.BlockSize; w++ {
			d := int(ra[w]) - int(rb[w])
			if d < 0 {
				d = -d
			}
			sad += d
		}
	}
	return sad
}
