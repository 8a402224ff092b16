package rtpmedia

import (
	"encoding/base64"
	"fmt"
)

const (
	// h264ClockRate is the fixed RTP clock rate for H.264 video (RFC 6184).
	h264ClockRate = 90000

	// DefaultMTU is the default maximum RTP packet size (12-byte header
	// plus payload) used to decide between Single-NAL and FU-A
	// fragmentation.
	DefaultMTU = 1400

	naluTypeFUA = 28
)

// H264Packetizer packetizes an Annex-B H.264 elementary stream into
// RTP packets per RFC 6184: Single-NAL for units that fit within one
// packet, Fragmentation Unit A (FU-A) otherwise.
type H264Packetizer struct {
	header *Header
	mtu    int

	// sprop-parameter-sets / profile-level-id, filled in when known;
	// SDPAttributes omits them until set.
	sps []byte
	pps []byte
}

// NewH264Packetizer builds a packetizer with a random SSRC (RFC 3550
// §8.1) and the default MTU.
func NewH264Packetizer(pt uint8) *H264Packetizer {
	return &H264Packetizer{
		header: NewHeaderRandomSSRC(pt),
		mtu:    DefaultMTU,
	}
}

// NewH264PacketizerWithSSRC builds a packetizer with an explicit SSRC,
// for deterministic tests.
func NewH264PacketizerWithSSRC(pt uint8, ssrc uint32) *H264Packetizer {
	return &H264Packetizer{
		header: NewHeader(pt, ssrc),
		mtu:    DefaultMTU,
	}
}

// SetMTU overrides the default MTU used to decide Single-NAL vs FU-A.
func (p *H264Packetizer) SetMTU(mtu int) {
	p.mtu = mtu
}

// SetParameterSets records SPS/PPS so SDPAttributes can advertise
// sprop-parameter-sets and profile-level-id.
func (p *H264Packetizer) SetParameterSets(sps, pps []byte) {
	p.sps = sps
	p.pps = pps
}

// PayloadType implements Packetizer.
func (p *H264Packetizer) PayloadType() uint8 { return p.header.PayloadType() }

// ClockRate implements Packetizer.
func (p *H264Packetizer) ClockRate() uint32 { return h264ClockRate }

// CodecName implements Packetizer.
func (p *H264Packetizer) CodecName() string { return "H264" }

// SSRC returns the stream's SSRC, mostly useful for tests that assert
// on the packets a broadcast produces.
func (p *H264Packetizer) SSRC() uint32 { return p.header.SSRC() }

// SDPAttributes implements Packetizer.
func (p *H264Packetizer) SDPAttributes() []string {
	pt := fmt.Sprintf("%d", p.header.PayloadType())
	fmtp := pt + " packetization-mode=1"

	if len(p.sps) >= 4 {
		fmtp += fmt.Sprintf("; profile-level-id=%02X%02X%02X", p.sps[1], p.sps[2], p.sps[3])
	}
	if p.sps != nil && p.pps != nil {
		fmtp += fmt.Sprintf("; sprop-parameter-sets=%s,%s", b64(p.sps), b64(p.pps))
	}

	return []string{"fmtp:" + fmtp}
}

// Packetize implements Packetizer. It extracts NAL units from the
// Annex-B frame, advances the timestamp exactly once (or not at all
// if the frame yields zero NAL units), and emits Single-NAL or FU-A
// packets per RFC 6184 §5.7/§5.8.
func (p *H264Packetizer) Packetize(frame []byte, timestampIncrement uint32) ([][]byte, error) {
	nalus := splitAnnexB(frame)
	if len(nalus) == 0 {
		return nil, nil
	}

	p.header.AdvanceTimestamp(timestampIncrement)

	var packets [][]byte
	for i, nalu := range nalus {
		isLastNALU := i == len(nalus)-1

		if len(nalu) <= p.mtu-12 {
			pkt, err := p.header.writePacket(isLastNALU, nalu)
			if err != nil {
				return nil, err
			}
			packets = append(packets, pkt)
			continue
		}

		frags, err := p.fragmentFUA(nalu, isLastNALU)
		if err != nil {
			return nil, err
		}
		packets = append(packets, frags...)
	}

	return packets, nil
}

// fragmentFUA splits one oversized NAL unit into FU-A fragments per
// RFC 6184 §5.8. chunkSize leaves room for the 2-byte FU-A indicator
// and header alongside the RTP header itself.
func (p *H264Packetizer) fragmentFUA(nalu []byte, markerOnLast bool) ([][]byte, error) {
	h := nalu[0]
	f := h & 0x80
	nri := h & 0x60
	typ := h & 0x1F
	body := nalu[1:]

	chunkSize := p.mtu - 14
	if chunkSize <= 0 {
		return nil, fmt.Errorf("rtpmedia: MTU %d too small for FU-A fragmentation", p.mtu)
	}

	var packets [][]byte
	for offset := 0; offset < len(body); offset += chunkSize {
		end := offset + chunkSize
		if end > len(body) {
			end = len(body)
		}
		chunk := body[offset:end]

		start := offset == 0
		last := end == len(body)

		indicator := f | nri | naluTypeFUA
		var fuHeader byte
		if start {
			fuHeader |= 1 << 7
		}
		if last {
			fuHeader |= 1 << 6
		}
		fuHeader |= typ

		payload := make([]byte, 2+len(chunk))
		payload[0] = indicator
		payload[1] = fuHeader
		copy(payload[2:], chunk)

		marker := last && markerOnLast
		pkt, err := p.header.writePacket(marker, payload)
		if err != nil {
			return nil, err
		}
		packets = append(packets, pkt)
	}

	return packets, nil
}

func b64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
