/*
DESCRIPTIONS
  helpers.go provides general codec related helper functions.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/


package pes

// RMVSID is a user-private stream ID (ITU-T Rec. H.222.0 / ISO/IEC 13818-1
// reserves 0x80-0xFF for user-private stream types) assigned to Retro
// Motion Video elementary streams.
const RMVSID = 0x80
