// Package sdpgen builds the RFC 4566 session description advertised in
// response to DESCRIBE, from a single configured codec packetizer.
package sdpgen

import (
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"

	"github.com/streamforge/rtspd/pkg/rtpmedia"
)

// Generate builds the SDP body for the given packetizer: fixed session
// fields, one video media line, the rtpmap line, any codec-provided
// attribute lines, and a trailing control attribute. Field order is
// fixed and does not depend on iteration order of the packetizer's
// attributes.
func Generate(p rtpmedia.Packetizer) ([]byte, error) {
	pt := strconv.Itoa(int(p.PayloadType()))

	rtpmap := sdp.Attribute{
		Key:   "rtpmap",
		Value: pt + " " + p.CodecName() + "/" + strconv.Itoa(int(p.ClockRate())),
	}

	attrs := []sdp.Attribute{rtpmap}
	for _, a := range p.SDPAttributes() {
		key, value, _ := strings.Cut(a, ":")
		attrs = append(attrs, sdp.Attribute{Key: key, Value: value})
	}
	attrs = append(attrs, sdp.Attribute{Key: "control", Value: "track1"})

	desc := &sdp.SessionDescription{
		Version: 0,
		Origin: sdp.Origin{
			Username:       "-",
			SessionID:      0,
			SessionVersion: 0,
			NetworkType:    "IN",
			AddressType:    "IP4",
			UnicastAddress: "127.0.0.1",
		},
		SessionName: "RTSP Server",
		ConnectionInformation: &sdp.ConnectionInformation{
			NetworkType: "IN",
			AddressType: "IP4",
			Address:     &sdp.Address{Address: "0.0.0.0"},
		},
		TimeDescriptions: []sdp.TimeDescription{
			{Timing: sdp.Timing{StartTime: 0, StopTime: 0}},
		},
		MediaDescriptions: []*sdp.MediaDescription{
			{
				MediaName: sdp.MediaName{
					Media:   "video",
					Port:    sdp.RangedPort{Value: 0},
					Protos:  []string{"RTP", "AVP"},
					Formats: []string{pt},
				},
				Attributes: attrs,
			},
		},
	}

	return desc.Marshal()
}
