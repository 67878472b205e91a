/*
NAME
  rmv_test.go

DESCRIPTION
  rmv_test.go contains end-to-end tests for the rmv package.

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
	"testing"

	"github.com/deepvideo/rmv/internal/plane"
	"github.com/deepvideo/rmv/internal/rmverrors"
)

func testConfig(w, h, keyint int) Config {
	return Config{Width: w, Height: h, KeyintMin: keyint, MERange: 4}
}

func bgr24Frame(width, height int, fill func(x, y int) (b, g, r byte)) []byte {
	buf := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b, g, r := fill(x, y)
			off := y*width*3 + x*3
			buf[off], buf[off+1], buf[off+2] = b, g, r
		}
	}
	return buf
}

func newHostPlanes(width, height int) ([plane.NumPlanes][]byte, [plane.NumPlanes]int) {
	var planes [plane.NumPlanes][]byte
	var strides [plane.NumPlanes]int
	for i := range planes {
		planes[i] = make([]byte, width*height)
		strides[i] = width
	}
	return planes, strides
}

// TestEncodeDecodeAllBlack covers scenario S1: a single all-zero 16x16
// frame.
func TestEncodeDecodeAllBlack(t *testing.T) {
	enc, err := NewEncoder(testConfig(16, 16, 10))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	host := bgr24Frame(16, 16, func(int, int) (byte, byte, byte) { return 0, 0, 0 })

	packet, keyframe, err := enc.EncodeFrame(host, 0)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	if !keyframe {
		t.Fatal("first frame should be a keyframe")
	}
	if string(packet[:3]) != "RMV" || packet[3] != FrameIntra || packet[4] != 1 || packet[5] != plane.BlockSize {
		t.Fatalf("unexpected frame header: % x", packet[:6])
	}

	dec, err := NewDecoder(testConfig(16, 16, 10))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	hostPlanes, hostStrides := newHostPlanes(16, 16)
	ft, err := dec.DecodeFrame(packet, hostPlanes, hostStrides)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if ft != FrameIntra {
		t.Fatalf("frame type = %d, want FrameIntra", ft)
	}
	for i, p := range hostPlanes {
		for _, v := range p {
			if v != 0 {
				t.Fatalf("plane %d not all-zero after decode", i)
			}
		}
	}
}

// TestEncodeDecodeStillFrame covers scenario S3: an inter frame
// identical to the preceding intra frame must decode to the same
// pixels, with every block PERFECT.
func TestEncodeDecodeStillFrame(t *testing.T) {
	const w, h = 32, 32
	pattern := func(x, y int) (byte, byte, byte) {
		return byte(2*x + y), byte(x + 3*y), byte(5*x - y)
	}
	host := bgr24Frame(w, h, pattern)

	enc, err := NewEncoder(testConfig(w, h, 10))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec, err := NewDecoder(testConfig(w, h, 10))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	p0, _, err := enc.EncodeFrame(host, 0)
	if err != nil {
		t.Fatalf("EncodeFrame(0): %v", err)
	}
	host0Planes, host0Strides := newHostPlanes(w, h)
	if _, err := dec.DecodeFrame(p0, host0Planes, host0Strides); err != nil {
		t.Fatalf("DecodeFrame(0): %v", err)
	}

	p1, keyframe, err := enc.EncodeFrame(host, 0)
	if err != nil {
		t.Fatalf("EncodeFrame(1): %v", err)
	}
	if keyframe {
		t.Fatal("second frame should not be a keyframe")
	}

	host1Planes, host1Strides := newHostPlanes(w, h)
	ft, err := dec.DecodeFrame(p1, host1Planes, host1Strides)
	if err != nil {
		t.Fatalf("DecodeFrame(1): %v", err)
	}
	if ft != FrameInter {
		t.Fatalf("frame type = %d, want FrameInter", ft)
	}

	for i := range host0Planes {
		for j := range host0Planes[i] {
			if host0Planes[i][j] != host1Planes[i][j] {
				t.Fatalf("plane %d byte %d differs between frame 0 and unmoved frame 1: %d vs %d", i, j, host0Planes[i][j], host1Planes[i][j])
			}
		}
	}
}

// TestDeterministicEncoding covers property test 3: encoding the same
// inputs twice yields byte-identical output.
func TestDeterministicEncoding(t *testing.T) {
	const w, h = 48, 48
	host := bgr24Frame(w, h, func(x, y int) (byte, byte, byte) {
		return byte(x * y), byte(x ^ y), byte(x + y)
	})

	run := func() []byte {
		enc, err := NewEncoder(testConfig(w, h, 2))
		if err != nil {
			t.Fatalf("NewEncoder: %v", err)
		}
		var out []byte
		for i := 0; i < 3; i++ {
			packet, _, err := enc.EncodeFrame(host, 0)
			if err != nil {
				t.Fatalf("EncodeFrame(%d): %v", i, err)
			}
			out = append(out, packet...)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

// TestDecodeRejectsShortPacket covers scenario S5's header-gating half
// and property test 5.
func TestDecodeRejectsShortPacket(t *testing.T) {
	dec, err := NewDecoder(testConfig(16, 16, 10))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	hostPlanes, hostStrides := newHostPlanes(16, 16)
	_, err = dec.DecodeFrame([]byte{'R', 'M'}, hostPlanes, hostStrides)
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("DecodeFrame on short packet: err = %v, want CorruptFrame", err)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	dec, err := NewDecoder(testConfig(16, 16, 10))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	hostPlanes, hostStrides := newHostPlanes(16, 16)
	bad := []byte{'X', 'M', 'V', FrameIntra, 1, plane.BlockSize}
	_, err = dec.DecodeFrame(bad, hostPlanes, hostStrides)
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("DecodeFrame on bad magic: err = %v, want CorruptFrame", err)
	}
}

// TestDecodeRejectsCorruptPlaneTerminator covers scenario S5: replacing
// the G plane's terminating 'E' must fail without corrupting later
// planes' decode (i.e. without panicking or reading garbage).
func TestDecodeRejectsCorruptPlaneTerminator(t *testing.T) {
	enc, err := NewEncoder(testConfig(16, 16, 1))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	host := bgr24Frame(16, 16, func(x, y int) (byte, byte, byte) { return byte(x), byte(y), byte(x + y) })
	packet, _, err := enc.EncodeFrame(host, 0)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}

	gPlaneSize := len(intraPlaneBytes(t, packet, 0))
	terminatorOffset := headerSize + gPlaneSize - 1
	packet[terminatorOffset] = 'X'

	dec, err := NewDecoder(testConfig(16, 16, 1))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	hostPlanes, hostStrides := newHostPlanes(16, 16)
	_, err = dec.DecodeFrame(packet, hostPlanes, hostStrides)
	if !rmverrors.Is(err, rmverrors.CorruptFrame) {
		t.Errorf("DecodeFrame with corrupt plane terminator: err = %v, want CorruptFrame", err)
	}
}

// intraPlaneBytes extracts the encoded bytes of the idx'th intra plane
// from packet's body, by reading the per-plane size field.
func intraPlaneBytes(t *testing.T, packet []byte, idx int) []byte {
	t.Helper()
	off := headerSize
	for i := 0; i < idx; i++ {
		size := leU32(packet[off+2 : off+6])
		off += int(size)
	}
	size := leU32(packet[off+2 : off+6])
	return packet[off : off+int(size)]
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
