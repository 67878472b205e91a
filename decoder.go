/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the RMV Decoder context: packet validation,
  frame-type dispatch, and the previous-plane update the reference
  decoder omits (spec.md section 9). Grounded in rmv_decode_frame in
  _examples/original_source/libavcodec/rmv.c.

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
	"github.com/deepvideo/rmv/internal/plane"
)

// Decoder turns RMV packets into planar GBR frames. Not safe for
// concurrent use; create one Decoder per stream.
type Decoder struct {
	cfg Config

	cur, prev plane.Triple
	started   bool // true once at least one frame has been decoded
}

// NewDecoder allocates a Decoder for a stream of cfg.Width x
// cfg.Height frames.
func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		cfg:  cfg,
		cur:  plane.NewTriple(cfg.Width, cfg.Height),
		prev: plane.NewTriple(cfg.Width, cfg.Height),
	}, nil
}

// DecodeFrame decodes one RMV packet into hostPlanes (three
// host-owned destination buffers, one per plane in G, B, R order, each
// with its own stride, 0 meaning tightly packed). It returns the
// packet's frame type (FrameIntra or FrameInter).
//
// On error, the current frame is abandoned and the Decoder's previous
// state is left untouched, so the stream can recover at the next
// keyframe (spec.md section 7); partially-written hostPlanes content
// from the failed frame must not be trusted by the caller.
func (d *Decoder) DecodeFrame(packet []byte, hostPlanes [plane.NumPlanes][]byte, hostStrides [plane.NumPlanes]int) (frameType int, err error) {
	r := bitio.NewReader(packet)

	hdr, err := readHeader(r)
	if err != nil {
		d.cfg.logf(err, pkg+"rejected frame header")
		return 0, err
	}

	switch hdr.FrameType {
	case FrameIntra:
		for i := 0; i < plane.NumPlanes; i++ {
			if err := intra.Decode(r, d.cur[i]); err != nil {
				d.cfg.logf(err, pkg+"intra plane decode failed", "plane", i)
				return 0, err
			}
		}
	case FrameInter:
		if !d.started && d.cfg.Logger != nil {
			d.cfg.Logger.Warning(pkg + "inter frame before any keyframe")
		}
		for i := 0; i < plane.NumPlanes; i++ {
			if err := inter.Decode(r, d.cur[i], d.prev[i]); err != nil {
				d.cfg.logf(err, pkg+"inter plane decode failed", "plane", i)
				return 0, err
			}
		}
	}

	// The reference decoder never copies its decoded output back into
	// its own previous-frame buffer; a literal port of that would only
	// decode the first inter frame after each keyframe correctly. Copy
	// the reconstructed frame forward so subsequent inter frames
	// reference live content (spec.md section 9).
	d.prev.CopyFrom(d.cur)
	d.started = true

	joinGBR(hostPlanes, hostStrides, d.cur)

	return hdr.FrameType, nil
}
