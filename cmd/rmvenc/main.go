/*
DESCRIPTION
  rmvenc encodes a raw interleaved BGR24 frame source to an RMV
  elementary stream. The source is either a raw .bgr24 file (frames
  packed back to back, no header) or, with -capture, a video file or
  webcam opened through gocv.io/x/gocv.VideoCapture (requires building
  with -tags withcv; see capture_withcv.go).

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// rmvenc encodes raw BGR24 frames, or a device/file capture, to an RMV
// elementary stream.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/deepvideo/rmv"
)

// Logging configuration: a rotated log file plus stderr.
const (
	logPath      = "rmvenc.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
)

func main() {
	in := flag.String("in", "", "path to a raw interleaved BGR24 file (required unless -capture)")
	capture := flag.String("capture", "", "video file path or webcam index (e.g. 0) to capture from, via gocv (requires -tags withcv)")
	out := flag.String("out", "out.rmv", "path to write the RMV elementary stream to")
	width := flag.Int("width", 0, "frame width (required with -in; inferred from -capture)")
	height := flag.Int("height", 0, "frame height (required with -in; inferred from -capture)")
	keyint := flag.Int("keyint", 25, "minimum keyframe interval")
	meRange := flag.Int("merange", 0, "motion search range (0 selects the codec default)")
	flag.Parse()

	fileLog := &lumberjack.Logger{Filename: logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	l := logging.New(logging.Info, io.MultiWriter(fileLog, os.Stderr), true)

	if *in == "" && *capture == "" {
		l.Fatal("one of -in or -capture is required")
	}

	dst, err := os.Create(*out)
	if err != nil {
		l.Fatal("could not create output file", "error", err)
	}
	defer dst.Close()

	if *capture != "" {
		if err := runCapture(*capture, dst, *keyint, *meRange, l); err != nil {
			l.Fatal("capture encode failed", "error", err)
		}
		return
	}

	if *width <= 0 || *height <= 0 {
		l.Fatal("-width and -height are required with -in")
	}
	if err := runFile(*in, dst, *width, *height, *keyint, *meRange, l); err != nil {
		l.Fatal("file encode failed", "error", err)
	}
}

// writeFramed writes packet to dst prefixed with its little-endian
// uint32 length. The RMV bitstream itself carries no inter-packet
// framing (each encoded frame is self-delimiting only internally, via
// its own plane size fields), so an .rmv file needs an outer framing
// to support random concatenation of packets; length-prefixing is the
// simplest one, mirroring the length-prefixed PES payloads used by
// container/mts.
func writeFramed(dst io.Writer, packet []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(packet)))
	if _, err := dst.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := dst.Write(packet)
	return err
}

func runFile(path string, dst io.Writer, width, height, keyint, meRange int, l logging.Logger) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open input: %w", err)
	}
	defer src.Close()

	enc, err := rmv.NewEncoder(rmv.Config{Width: width, Height: height, KeyintMin: keyint, MERange: meRange, Logger: l})
	if err != nil {
		return fmt.Errorf("could not create encoder: %w", err)
	}

	frameSize := width * height * 3
	buf := make([]byte, frameSize)
	var n int
	for {
		_, err := io.ReadFull(src, buf)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return fmt.Errorf("could not read frame %d: %w", n, err)
		}
		packet, keyframe, err := enc.EncodeFrame(buf, 0)
		if err != nil {
			return fmt.Errorf("could not encode frame %d: %w", n, err)
		}
		if err := writeFramed(dst, packet); err != nil {
			return fmt.Errorf("could not write frame %d: %w", n, err)
		}
		l.Debug("encoded frame", "index", n, "keyframe", keyframe, "bytes", len(packet))
		n++
	}
	l.Info("encode complete", "frames", n)
	return nil
}
