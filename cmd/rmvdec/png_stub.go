//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  png_stub.go is built in place of png_withcv.go when rmvdec is built
  without -tags withcv, so the binary still links without a gocv
  (cgo/OpenCV) dependency; -png simply reports it is unavailable.

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

import "errors"

type pngSink struct{}

func newPNGSink(string, int, int) (*pngSink, error) {
	return nil, errors.New("rmvdec was built without -tags withcv: -png is unavailable")
}

func (*pngSink) write(int, [3][]byte) error { return nil }
