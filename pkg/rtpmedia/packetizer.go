// Package rtpmedia packetizes elementary video bitstreams into RTP
// packets (RFC 3550) per codec-specific rules, and builds the SDP
// attribute lines that describe a given codec.
package rtpmedia

// Packetizer converts elementary video frames into RTP packets. Each
// codec (H.264, and eventually H.265/MJPEG) implements this surface;
// the server holds exactly one instance for its lifetime and uses it
// only for SDP generation. Packetize mutates RTP header state and no
// implementation locks internally, so a caller that drives Packetize
// while the server serves DESCRIBE must serialize those calls itself.
type Packetizer interface {
	// PayloadType is the RTP payload type advertised in SDP and
	// written into every packet header.
	PayloadType() uint8

	// ClockRate is the RTP clock rate in Hz, e.g. 90000 for video.
	ClockRate() uint32

	// CodecName is the SDP rtpmap codec identifier, e.g. "H264".
	CodecName() string

	// SDPAttributes returns additional "a=" attribute lines (without
	// the "a=" prefix) describing codec-specific parameters, e.g.
	// "fmtp:96 packetization-mode=1".
	SDPAttributes() []string

	// Packetize converts one elementary frame into an ordered
	// sequence of complete RTP datagrams (header + payload), ready
	// for UDP send. timestampIncrement advances the RTP timestamp
	// exactly once per call, before any packet is emitted.
	Packetize(frame []byte, timestampIncrement uint32) ([][]byte, error)
}
