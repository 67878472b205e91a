//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  capture_stub.go is built in place of capture_withcv.go when rmvenc is
  built without -tags withcv, so the binary still links without a gocv
  (cgo/OpenCV) dependency; -capture simply reports it is unavailable.

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
	"errors"
	"io"

	"github.com/ausocean/utils/logging"
)

var errNoCV = errors.New("rmvenc was built without -tags withcv: -capture is unavailable")

func runCapture(string, io.Writer, int, int, logging.Logger) error {
	return errNoCV
}
