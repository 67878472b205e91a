/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the RMV Encoder context: frame submission,
  keyframe cadence, and dispatch into the intra/inter plane codecs.
  Grounded in rmv_encode_frame in
  _examples/original_source/libavcodec/rmvenc.c.

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

package rmv

import (
	"github.com/deepvideo/rmv/internal/bitio"
	"github.com/deepvideo/rmv/internal/inter"
	"github.com/deepvideo/rmv/internal/intra"
	"github.com/deepvideo/rmv/internal/motion"
	"github.com/deepvideo/rmv/internal/plane"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

// pkg is prepended to log messages, following the ausocean logging
// convention of a package tag on every entry.
const pkg = "rmv: "

// Encoder turns host-supplied BGR24 frames into RMV packets. Not safe
// for concurrent use; create one Encoder per stream.
type Encoder struct {
	cfg Config

	cur, prev plane.Triple
	frameNum  int

	scratch []byte // reused output buffer, sized for the worst case

	lastStats Stats
}

// Stats reports the inter-frame block mode counts from the most recent
// EncodeFrame call, for callers (e.g. cmd/rmvbench) that want visibility
// into prediction quality, matching the pred_perfect/pred_error counters
// the reference encoder tracks internally (rmvenc.c). All fields are
// zero after an intra frame, since intra frames carry no per-block
// motion decisions.
type Stats struct {
	ZeroBlocks    int
	PerfectBlocks int
	ErrorBlocks   int
}

// LastFrameStats returns the block mode counts from the most recent
// EncodeFrame call.
func (e *Encoder) LastFrameStats() Stats { return e.lastStats }

// NewEncoder allocates an Encoder for a stream of cfg.Width x
// cfg.Height BGR24 frames.
func NewEncoder(cfg Config) (*Encoder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.KeyintMin <= 0 {
		return nil, rmverrors.Wrap(rmverrors.Unsupported, "keyint_min must be positive, got %d", cfg.KeyintMin)
	}

	e := &Encoder{
		cfg:     cfg,
		cur:     plane.NewTriple(cfg.Width, cfg.Height),
		prev:    plane.NewTriple(cfg.Width, cfg.Height),
		scratch: make([]byte, maxPacketSize(cfg.Width, cfg.Height)),
	}
	return e, nil
}

// EncodeFrame encodes one host BGR24 frame (hostStride bytes per row, 0
// meaning width*3) and returns the RMV packet and whether it is a
// keyframe (intra-coded). The returned slice aliases the Encoder's
// internal scratch buffer and is only valid until the next EncodeFrame
// call.
func (e *Encoder) EncodeFrame(host []byte, hostStride int) (packet []byte, keyframe bool, err error) {
	splitBGR24(e.cur, host, hostStride)

	intraFrame := e.frameNum%e.cfg.KeyintMin == 0
	w := bitio.NewWriter(e.scratch)

	e.lastStats = Stats{}
	if intraFrame {
		writeHeader(w, FrameIntra)
		for i := 0; i < plane.NumPlanes; i++ {
			intra.Encode(w, intra.ModeUpRLE, e.cur[i])
		}
	} else {
		writeHeader(w, FrameInter)
		for i := 0; i < plane.NumPlanes; i++ {
			e.encodeInterPlane(w, e.cur[i], e.prev[i])
		}
	}

	e.prev.CopyFrom(e.cur)
	e.frameNum++

	return w.Bytes(), intraFrame, nil
}

// encodeInterPlane runs the motion estimator over every block of cur
// against prev and writes the resulting inter-coded plane, per spec.md
// section 4.5.
func (e *Encoder) encodeInterPlane(w *bitio.Writer, cur, prev *plane.Buffer) {
	bw, bh := plane.Blocks(cur.Width, cur.Height)
	mvs := make([]inter.MVRecord, bw*bh)
	payloads := make([][]byte, bw*bh)

	searchRange := e.cfg.meRange()

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			x, y := bx*plane.BlockSize, by*plane.BlockSize
			idx := by*bw + bx

			res := motion.Estimate(cur, prev, x, y, searchRange)
			switch {
			case res.Zero:
				mvs[idx] = inter.MVRecord{Flags: inter.FlagZero}
				e.lastStats.ZeroBlocks++
			case res.Perfect || res.SAD == 0:
				mvs[idx] = inter.MVRecord{DX: res.DX, DY: res.DY, Flags: inter.FlagPerfect}
				e.lastStats.PerfectBlocks++
			default:
				mvs[idx] = inter.MVRecord{DX: res.DX, DY: res.DY, Flags: inter.FlagErrorDirect}
				payloads[idx] = residualBlock(cur, x, y, prev, x+int(res.DX), y+int(res.DY))
				e.lastStats.ErrorBlocks++
			}
		}
	}

	inter.Encode(w, mvs, func(mv inter.MVRecord, idx int) []byte { return payloads[idx] })
}

// residualBlock computes current[h,w] - previous[sy+h, sx+w] (mod 256)
// over a 16x16 block, per spec.md section 4.5 step 5.
func residualBlock(cur *plane.Buffer, x, y int, prev *plane.Buffer, sx, sy int) []byte {
	out := make([]byte, inter.PayloadSize)
	for h := 0; h < plane.BlockSize; h++ {
		curRow := cur.Row(y + h)[x : x+plane.BlockSize]
		prevRow := prev.Row(sy + h)[sx : sx+plane.BlockSize]
		dst := out[h*plane.BlockSize : (h+1)*plane.BlockSize]
		for w := 0; w < plane.BlockSize; w++ {
			dst[w] = curRow[w] - prevRow[w]
		}
	}
	return out
}

// maxPacketSize returns a safe upper bound on the encoded packet size
// for a width x height frame: the frame header plus, for each of the
// three planes, the larger of the intra up-RLE worst case and the inter
// all-ERROR_DIRECT worst case (spec.md section 5's resource model).
func maxPacketSize(width, height int) int {
	stride := plane.Align(width, plane.BlockSize)
	fullHeight := plane.Align(height, plane.BlockSize)
	bw, bh := plane.Blocks(width, height)

	intraWorst := intra.EncodedSize(intra.ModeUpRLE, stride, fullHeight)
	interWorst := inter.EncodedSize(bw, bh, bw*bh)

	planeWorst := intraWorst
	if interWorst > planeWorst {
		planeWorst = interWorst
	}

	return headerSize + plane.NumPlanes*planeWorst
}
