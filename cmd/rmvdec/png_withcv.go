//go:build withcv
// +build withcv

/*
DESCRIPTION
  png_withcv.go implements rmvdec's -png output via
  gocv.io/x/gocv.IMWrite, grounded in cmd/rv/probe.go's gocv.Mat use.

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
	"path/filepath"

	"gocv.io/x/gocv"
)

// pngSink writes each decoded frame as a numbered PNG file via gocv.
type pngSink struct {
	dir           string
	width, height int
}

func newPNGSink(dir string, width, height int) (*pngSink, error) {
	return &pngSink{dir: dir, width: width, height: height}, nil
}

func (s *pngSink) write(index int, planes [3][]byte) error {
	g, b, r := planes[0], planes[1], planes[2]
	buf := make([]byte, len(g)*3)
	for i := range g {
		buf[3*i], buf[3*i+1], buf[3*i+2] = b[i], g[i], r[i]
	}
	img, err := gocv.NewMatFromBytes(s.height, s.width, gocv.MatTypeCV8UC3, buf)
	if err != nil {
		return fmt.Errorf("could not build image from decoded frame: %w", err)
	}
	defer img.Close()
	path := filepath.Join(s.dir, fmt.Sprintf("frame%06d.png", index))
	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("gocv.IMWrite failed for %s", path)
	}
	return nil
}
