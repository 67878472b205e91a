/*
NAME
  packing.go

DESCRIPTION
  packing.go converts between the host's interleaved BGR24 frame format
  and the codec's internal padded GBR planes, per spec.md section 4.6.

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

import "github.com/deepvideo/rmv/internal/plane"

// splitBGR24 deinterleaves a host-supplied BGR24 frame (hostStride bytes
// per row, 0 meaning width*3) into dst's three planes: B at byte offset
// 0, G at offset 1, R at offset 2 of each 3-byte pixel.
func splitBGR24(dst plane.Triple, host []byte, hostStride int) {
	width, height := dst[plane.G].Width, dst[plane.G].Height
	if hostStride <= 0 {
		hostStride = width * 3
	}
	for y := 0; y < height; y++ {
		src := host[y*hostStride : y*hostStride+width*3]
		gRow, bRow, rRow := dst[plane.G].Row(y), dst[plane.B].Row(y), dst[plane.R].Row(y)
		for x := 0; x < width; x++ {
			px := src[x*3 : x*3+3]
			bRow[x] = px[0]
			gRow[x] = px[1]
			rRow[x] = px[2]
		}
	}
}

// joinGBR reassembles src's three padded planes into the host's planar
// destination buffers, each with its own destination stride (0 meaning
// tightly packed, i.e. equal to width), over the semantic width x height
// window only.
func joinGBR(hostPlanes [plane.NumPlanes][]byte, hostStrides [plane.NumPlanes]int, src plane.Triple) {
	width, height := src[plane.G].Width, src[plane.G].Height
	for i := 0; i < plane.NumPlanes; i++ {
		stride := hostStrides[i]
		if stride <= 0 {
			stride = width
		}
		for y := 0; y < height; y++ {
			dst := hostPlanes[i][y*stride : y*stride+width]
			copy(dst, src[i].Row(y)[:width])
		}
	}
}
