/*
DESCRIPTION
  rmvdec decodes an RMV elementary stream (as written by rmvenc) back
  to raw interleaved BGR24 frames, or, when built with -tags withcv, to
  a sequence of numbered PNG frames via gocv.io/x/gocv.IMWrite (see
  png_withcv.go).

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// rmvdec decodes an RMV elementary stream to raw BGR24 or PNG frames.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/deepvideo/rmv"
)

func main() {
	in := flag.String("in", "", "path to an RMV elementary stream written by rmvenc")
	outDir := flag.String("png", "", "directory to write numbered PNG frames to (requires -tags withcv; mutually exclusive with -out)")
	out := flag.String("out", "", "path to write raw interleaved BGR24 frames to")
	width := flag.Int("width", 0, "frame width (required)")
	height := flag.Int("height", 0, "frame height (required)")
	keyint := flag.Int("keyint", 25, "minimum keyframe interval the stream was encoded with")
	flag.Parse()

	l := logging.New(logging.Info, os.Stderr, true)

	if *in == "" || *width <= 0 || *height <= 0 {
		l.Fatal("-in, -width and -height are required")
	}
	if (*outDir == "") == (*out == "") {
		l.Fatal("exactly one of -png or -out must be given")
	}

	src, err := os.Open(*in)
	if err != nil {
		l.Fatal("could not open input", "error", err)
	}
	defer src.Close()

	dec, err := rmv.NewDecoder(rmv.Config{Width: *width, Height: *height, KeyintMin: *keyint, Logger: l})
	if err != nil {
		l.Fatal("could not create decoder", "error", err)
	}

	var sink frameSink
	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			l.Fatal("could not create PNG output directory", "error", err)
		}
		s, err := newPNGSink(*outDir, *width, *height)
		if err != nil {
			l.Fatal("PNG output unavailable", "error", err)
		}
		sink = s
	} else {
		f, err := os.Create(*out)
		if err != nil {
			l.Fatal("could not create raw output file", "error", err)
		}
		defer f.Close()
		sink = &rawSink{w: f}
	}

	planeG := make([]byte, *width**height)
	planeB := make([]byte, *width**height)
	planeR := make([]byte, *width**height)
	hostPlanes := [3][]byte{planeG, planeB, planeR}
	hostStrides := [3]int{*width, *width, *width}

	var n int
	for {
		packet, err := readFramed(src)
		if err == io.EOF {
			break
		}
		if err != nil {
			l.Fatal("could not read frame", "index", n, "error", err)
		}
		frameType, err := dec.DecodeFrame(packet, hostPlanes, hostStrides)
		if err != nil {
			l.Fatal("could not decode frame", "index", n, "error", err)
		}
		if err := sink.write(n, hostPlanes); err != nil {
			l.Fatal("could not write decoded frame", "index", n, "error", err)
		}
		l.Debug("decoded frame", "index", n, "frameType", frameType)
		n++
	}
	l.Info("decode complete", "frames", n)
}

// readFramed reads one length-prefixed packet written by rmvenc's
// writeFramed.
func readFramed(src io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(src, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	packet := make([]byte, n)
	if _, err := io.ReadFull(src, packet); err != nil {
		return nil, fmt.Errorf("truncated packet body: %w", err)
	}
	return packet, nil
}

// frameSink receives successive decoded frames as three planar G, B, R
// byte slices.
type frameSink interface {
	write(index int, planes [3][]byte) error
}

// rawSink writes interleaved BGR24 frames to an io.Writer.
type rawSink struct{ w io.Writer }

func (s *rawSink) write(_ int, planes [3][]byte) error {
	g, b, r := planes[0], planes[1], planes[2]
	buf := make([]byte, len(g)*3)
	for i := range g {
		buf[3*i], buf[3*i+1], buf[3*i+2] = b[i], g[i], r[i]
	}
	_, err := s.w.Write(buf)
	return err
}
