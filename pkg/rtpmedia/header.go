package rtpmedia

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/pion/rtp"
)

// Header is the generic RTP header state shared by every codec
// packetizer (RFC 3550 §5.1): payload type and SSRC are fixed at
// construction, sequence number and timestamp advance as packets and
// frames are emitted.
type Header struct {
	pt        uint8
	ssrc      uint32
	sequence  uint16
	timestamp uint32
}

// NewHeader builds header state with an explicit SSRC.
func NewHeader(pt uint8, ssrc uint32) *Header {
	return &Header{pt: pt, ssrc: ssrc}
}

// NewHeaderRandomSSRC builds header state with an SSRC drawn uniformly
// at random, per RFC 3550 §8.1.
func NewHeaderRandomSSRC(pt uint8) *Header {
	return NewHeader(pt, randUint32())
}

func randUint32() uint32 {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return binary.BigEndian.Uint32(b[:])
}

// PayloadType returns the RTP payload type this header writes.
func (h *Header) PayloadType() uint8 { return h.pt }

// SSRC returns the stream's synchronization source identifier.
func (h *Header) SSRC() uint32 { return h.ssrc }

// Sequence returns the next sequence number to be written.
func (h *Header) Sequence() uint16 { return h.sequence }

// Timestamp returns the current RTP timestamp (lower 32 bits).
func (h *Header) Timestamp() uint32 { return h.timestamp }

// AdvanceTimestamp adds increment to the timestamp; the addition wraps
// at 2^32, matching the lower 32 bits emitted on the wire.
func (h *Header) AdvanceTimestamp(increment uint32) {
	h.timestamp += increment
}

// Write produces a 12-byte RTP header for the current sequence number
// and timestamp, then advances the sequence number (wrapping at
// 2^16). It never advances the timestamp — only AdvanceTimestamp does.
func (h *Header) Write(marker bool) ([]byte, error) {
	hdr := rtp.Header{
		Version:        2,
		PayloadType:    h.pt,
		SequenceNumber: h.sequence,
		Timestamp:      h.timestamp,
		SSRC:           h.ssrc,
		Marker:         marker,
	}

	buf, err := hdr.Marshal()
	if err != nil {
		return nil, err
	}

	h.sequence++
	return buf, nil
}

// writePacket marshals a complete RTP datagram (header + payload) for
// the current sequence number and timestamp, and advances the
// sequence number. Packetizers use this instead of Write so the
// header and payload are produced from a single pion/rtp.Packet,
// rather than concatenated by hand.
func (h *Header) writePacket(marker bool, payload []byte) ([]byte, error) {
	pkt := rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			PayloadType:    h.pt,
			SequenceNumber: h.sequence,
			Timestamp:      h.timestamp,
			SSRC:           h.ssrc,
			Marker:         marker,
		},
		Payload: payload,
	}

	buf, err := pkt.Marshal()
	if err != nil {
		return nil, err
	}

	h.sequence++
	return buf, nil
}
