/*
DESCRIPTION
  rmvmux reads an RMV elementary stream (as written by rmvenc) and
  wraps it into an MPEG-TS .ts file via container/mts.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// rmvmux wraps an RMV elementary stream into an MPEG-TS transport
// stream.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/deepvideo/rmv/container/mts"
)

func main() {
	in := flag.String("in", "", "path to an RMV elementary stream written by rmvenc")
	out := flag.String("out", "out.ts", "path to write the MPEG-TS stream to")
	fps := flag.Float64("fps", 25, "access unit rate, used to derive PCR/PTS timing")
	flag.Parse()

	l := logging.New(logging.Info, os.Stderr, true)

	if *in == "" {
		l.Fatal("-in is required")
	}

	src, err := os.Open(*in)
	if err != nil {
		l.Fatal("could not open input", "error", err)
	}
	defer src.Close()

	dst, err := os.Create(*out)
	if err != nil {
		l.Fatal("could not create output", "error", err)
	}

	enc, err := mts.NewEncoder(dst, l, mts.Rate(*fps))
	if err != nil {
		dst.Close()
		l.Fatal("could not create mts encoder", "error", err)
	}

	var n int
	for {
		packet, keyframe, err := readFramed(src)
		if err == io.EOF {
			break
		}
		if err != nil {
			l.Fatal("could not read frame", "index", n, "error", err)
		}
		if _, err := enc.Write(packet, keyframe); err != nil {
			l.Fatal("could not mux frame", "index", n, "error", err)
		}
		n++
	}
	if err := enc.Close(); err != nil {
		l.Fatal("could not close mts encoder", "error", err)
	}
	l.Info("mux complete", "frames", n)
}

// readFramed reads one length-prefixed RMV packet and reports whether
// its frame_type byte marks it a keyframe (intra frame), matching
// rmvenc's writeFramed and RMV's 6-byte header layout (frame_type is
// the fourth byte).
func readFramed(src io.Reader) (packet []byte, keyframe bool, err error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(src, lenBuf[:]); err != nil {
		return nil, false, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	packet = make([]byte, n)
	if _, err := io.ReadFull(src, packet); err != nil {
		return nil, false, fmt.Errorf("truncated packet body: %w", err)
	}
	const frameTypeOffset = 3
	const frameIntra = 1
	if len(packet) <= frameTypeOffset {
		return nil, false, fmt.Errorf("packet too short to carry a frame header")
	}
	return packet, packet[frameTypeOffset] == frameIntra, nil
}
