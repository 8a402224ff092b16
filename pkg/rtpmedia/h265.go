package rtpmedia

import (
	"errors"
	"fmt"
)

const h265ClockRate = 90000

// ErrNotImplemented is returned by placeholder packetizers that satisfy
// the Packetizer surface for conformance but do not yet fragment real
// bitstreams.
var ErrNotImplemented = errors.New("rtpmedia: packetizer not implemented")

// H265Packetizer is a conformance-target stub for RFC 7798 (HEVC over
// RTP). Unlike H.264, an HEVC NAL unit header is 2 bytes and the FU
// header carries a 6-bit NAL type, so it cannot reuse H264Packetizer's
// fragmentation directly. SDPAttributes reports an fmtp line with empty
// sprop-vps/sprop-sps/sprop-pps values; Packetize is unimplemented.
type H265Packetizer struct {
	header *Header
}

// NewH265Packetizer builds a stub H.265 packetizer with a random SSRC.
func NewH265Packetizer(pt uint8) *H265Packetizer {
	return &H265Packetizer{header: NewHeaderRandomSSRC(pt)}
}

func (p *H265Packetizer) PayloadType() uint8 { return p.header.PayloadType() }

func (p *H265Packetizer) ClockRate() uint32 { return h265ClockRate }

func (p *H265Packetizer) CodecName() string { return "H265" }

func (p *H265Packetizer) SDPAttributes() []string {
	return []string{
		fmt.Sprintf("fmtp:%d sprop-vps=; sprop-sps=; sprop-pps=", p.header.PayloadType()),
	}
}

func (p *H265Packetizer) Packetize(frame []byte, timestampIncrement uint32) ([][]byte, error) {
	return nil, ErrNotImplemented
}
