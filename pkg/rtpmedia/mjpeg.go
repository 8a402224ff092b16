package rtpmedia

import "fmt"

const (
	mjpegClockRate     = 90000
	mjpegPayloadType26 = 26
)

// MJPEGPacketizer is a conformance-target stub for RFC 2435 (JPEG over
// RTP). Real MJPEG fragmentation has no NAL concept: each JPEG frame
// splits into one or more RTP packets, each payload prefixed with the
// 8-byte JPEG-specific header (type, Q, width, height, fragment
// offset). Payload type 26 is the RFC 3551 static assignment.
type MJPEGPacketizer struct {
	header *Header
}

// NewMJPEGPacketizer builds a stub MJPEG packetizer using the static
// payload type 26.
func NewMJPEGPacketizer() *MJPEGPacketizer {
	return &MJPEGPacketizer{header: NewHeaderRandomSSRC(mjpegPayloadType26)}
}

func (p *MJPEGPacketizer) PayloadType() uint8 { return p.header.PayloadType() }

func (p *MJPEGPacketizer) ClockRate() uint32 { return mjpegClockRate }

func (p *MJPEGPacketizer) CodecName() string { return "JPEG" }

func (p *MJPEGPacketizer) SDPAttributes() []string {
	return nil
}

func (p *MJPEGPacketizer) Packetize(frame []byte, timestampIncrement uint32) ([][]byte, error) {
	return nil, fmt.Errorf("mjpeg packetizer: %w", ErrNotImplemented)
}
