/*
NAME
  config.go

DESCRIPTION
  config.go defines the configuration options an RMV encoder or decoder
  context consumes from its host, per spec.md section 6. Styled after
  revid/config/config.go's plain option-struct-plus-defaults approach,
  scaled down to RMV's much smaller option set.

AUTHOR
  Mara Lindqvist <mara@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

package rmv

import (
	"github.com/ausocean/utils/logging"

	"github.com/deepvideo/rmv/internal/motion"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

// Config holds the options a host supplies when opening an Encoder or
// Decoder context (spec.md section 6's configuration table).
type Config struct {
	// Width and Height are the semantic pixel dimensions of every frame
	// in the stream. Required; must not change for the lifetime of the
	// context.
	Width, Height int

	// KeyintMin is the keyframe cadence: frame i is coded intra when i
	// mod KeyintMin == 0, inter otherwise. Required for an Encoder;
	// unused by a Decoder, which dispatches on the frame_type byte.
	KeyintMin int

	// MERange is the motion estimator's search half-range. Zero or a
	// negative value selects motion.DefaultRange; values above
	// motion.MaxRange are clamped to it.
	MERange int

	// Logger receives diagnostic messages. May be left nil, in which
	// case the context logs nothing.
	Logger logging.Logger
}

// validate checks the dimension requirements common to both Encoder and
// Decoder construction. The KeyintMin check is made by NewEncoder alone.
func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return rmverrors.Wrap(rmverrors.Unsupported, "invalid frame dimensions %dx%d", c.Width, c.Height)
	}
	return nil
}

// meRange returns c.MERange clamped to the estimator's supported range.
func (c Config) meRange() int {
	return motion.ClampRange(c.MERange)
}

// logf calls Logger.Error when non-nil and err is non-nil; used at the
// single diagnostic point each core failure path is allowed (spec.md
// section 7).
func (c Config) logf(err error, msg string, kv ...interface{}) {
	if c.Logger == nil || err == nil {
		return
	}
	c.Logger.Error(msg, append(kv, "error", err)...)
}
