//go:build withcv
// +build withcv

/*
DESCRIPTION
  capture_withcv.go implements -capture support for rmvenc via
  gocv.io/x/gocv.VideoCapture, grounded in
  exp/gocv-exp/main.go's webcam capture loop.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

package main

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"github.com/ausocean/utils/logging"
	"github.com/deepvideo/rmv"
)

func runCapture(source string, dst io.Writer, keyint, meRange int, l logging.Logger) error {
	cap, err := gocv.OpenVideoCapture(source)
	if err != nil {
		return fmt.Errorf("could not open capture device %q: %w", source, err)
	}
	defer cap.Close()

	width := int(cap.Get(gocv.VideoCaptureFrameWidth))
	height := int(cap.Get(gocv.VideoCaptureFrameHeight))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("capture device reported invalid dimensions %dx%d", width, height)
	}

	enc, err := rmv.NewEncoder(rmv.Config{Width: width, Height: height, KeyintMin: keyint, MERange: meRange, Logger: l})
	if err != nil {
		return fmt.Errorf("could not create encoder: %w", err)
	}

	img := gocv.NewMat()
	defer img.Close()

	var n int
	for cap.Read(&img) {
		if img.Empty() {
			continue
		}
		host, err := img.DataPtrUint8()
		if err != nil {
			return fmt.Errorf("could not access frame %d data: %w", n, err)
		}
		packet, keyframe, err := enc.EncodeFrame(host, int(img.Step()))
		if err != nil {
			return fmt.Errorf("could not encode frame %d: %w", n, err)
		}
		if err := writeFramed(dst, packet); err != nil {
			return fmt.Errorf("could not write frame %d: %w", n, err)
		}
		l.Debug("encoded frame", "index", n, "keyframe", keyframe, "bytes", len(packet))
		n++
	}
	l.Info("capture encode complete", "frames", n)
	return nil
}
