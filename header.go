/*
NAME
  header.go

DESCRIPTION
  header.go implements the 6-byte RMV frame header: magic, frame type,
  pixel type and block size, per spec.md section 4.6. Grounded in
  rmv_encode_frame/rmv_decode_frame's header handling in
  _examples/original_source/libavcodec/rmvenc.c and rmv.c.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

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
	"github.com/deepvideo/rmv/internal/plane"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

// Frame types, matching the frame_type header byte.
const (
	FrameIntra = 1
	FrameInter = 2
)

// pixTypeGBR is the only pixel-format value the core accepts.
const pixTypeGBR = 1

// headerSize is the fixed 6-byte frame header length.
const headerSize = 6

// frameHeader is the decoded form of the 6-byte RMV frame header.
type frameHeader struct {
	FrameType int
	PixType   int
	BlockSize int
}

func writeHeader(w *bitio.Writer, frameType int) {
	w.WriteU8('R')
	w.WriteU8('M')
	w.WriteU8('V')
	w.WriteU8(byte(frameType))
	w.WriteU8(pixTypeGBR)
	w.WriteU8(plane.BlockSize)
}

// readHeader validates and parses the 6-byte frame header. A packet
// shorter than headerSize, missing the 'RMV' magic, or with an
// unrecognised pix_type or block_size is rejected before any plane work
// (spec.md section 4.6 and the S5/frame-header-gating property test).
func readHeader(r *bitio.Reader) (frameHeader, error) {
	if r.Len() < headerSize {
		return frameHeader{}, rmverrors.Wrap(rmverrors.CorruptFrame, "packet shorter than %d-byte frame header", headerSize)
	}
	if err := r.ExpectByte('R'); err != nil {
		return frameHeader{}, err
	}
	if err := r.ExpectByte('M'); err != nil {
		return frameHeader{}, err
	}
	if err := r.ExpectByte('V'); err != nil {
		return frameHeader{}, err
	}

	frameType, err := r.ReadU8()
	if err != nil {
		return frameHeader{}, err
	}
	if frameType != FrameIntra && frameType != FrameInter {
		return frameHeader{}, rmverrors.Wrap(rmverrors.CorruptFrame, "unknown frame type %d", frameType)
	}

	pixType, err := r.ReadU8()
	if err != nil {
		return frameHeader{}, err
	}
	if pixType != pixTypeGBR {
		return frameHeader{}, rmverrors.Wrap(rmverrors.Unsupported, "unsupported pix_type %d", pixType)
	}

	blockSize, err := r.ReadU8()
	if err != nil {
		return frameHeader{}, err
	}
	if blockSize != plane.BlockSize {
		return frameHeader{}, rmverrors.Wrap(rmverrors.Unsupported, "unsupported block_size %d", blockSize)
	}

	return frameHeader{FrameType: int(frameType), PixType: int(pixType), BlockSize: int(blockSize)}, nil
}
