/*
NAME
  errors.go

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// Package rmverrors defines the error kinds shared by every RMV codec
// package, and helpers to wrap and test them. It does no logging.
package rmverrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds. Every error the decoder returns wraps exactly one
// of these via errors.Wrap, so callers can test with errors.Is/errors.Cause.
var (
	// Truncated is returned when a read would advance the cursor past the
	// end of the packet.
	Truncated = errors.New("rmv: truncated packet")

	// CorruptFrame is returned for any structural violation: a missing
	// magic byte, an unknown frame type, prediction mode or block flag, an
	// RLE run spanning more than one scan-line boundary, or a motion
	// vector resolving outside the previous frame.
	CorruptFrame = errors.New("rmv: corrupt frame")

	// Unsupported is returned for a structurally valid but unsupported
	// packet: a pixel format other than GBR planar, or a block size other
	// than 16.
	Unsupported = errors.New("rmv: unsupported")

	// AllocationFailure is the error kind for a failed plane or scratch
	// buffer allocation. No constructor in this module returns it:
	// NewEncoder and NewDecoder allocate with make, which reports no error.
	AllocationFailure = errors.New("rmv: allocation failure")
)

// Wrap annotates one of the sentinel kinds above with positional context
// (a plane index, block coordinate, or byte offset) for diagnostics,
// while leaving errors.Cause(err) equal to kind.
func Wrap(kind error, format string, args ...interface{}) error {
	return errors.Wrap(kind, fmt.Sprintf(format, args...))
}

// Is reports whether err (or any error it wraps) is kind.
func Is(err, kind error) bool {
	return errors.Cause(err) == kind
}
