/*
NAME
  doc.go

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// Package rmv implements the Retro Motion Video codec: a planar,
// block-motion-compensated codec over three independent 8-bit planes
// (G, B, R), built from the intra (internal/intra), inter
// (internal/inter) and motion-estimation (internal/motion) packages.
//
// An Encoder turns host-supplied interleaved BGR24 frames into RMV
// packets; a Decoder turns RMV packets back into planar GBR frames. Both
// are single-threaded, synchronous, and hold all state in the Encoder or
// Decoder value itself; there is no package-level mutable state.
package rmv
