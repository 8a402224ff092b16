package rtsp

import (
	"strconv"
	"strings"
)

// ClientTransport is the client-side half of a negotiated Transport
// header: the RTP/RTCP ports the client wants datagrams sent to
// (RFC 2326 §12.39).
type ClientTransport struct {
	ClientRTPPort  int
	ClientRTCPPort int
}

// ParseTransportHeader parses the value of a SETUP request's Transport
// header, e.g. "RTP/AVP;unicast;client_port=8000-8001". Only the
// client_port token is extracted; any other shape yields ok == false
// and the caller (the SETUP handler) must respond 400.
func ParseTransportHeader(value string) (ClientTransport, bool) {
	for _, token := range strings.Split(value, ";") {
		token = strings.TrimSpace(token)
		rest, found := strings.CutPrefix(token, "client_port=")
		if !found {
			continue
		}

		ports := strings.Split(rest, "-")
		if len(ports) != 2 {
			return ClientTransport{}, false
		}

		rtp, err := strconv.Atoi(ports[0])
		if err != nil {
			return ClientTransport{}, false
		}
		rtcp, err := strconv.Atoi(ports[1])
		if err != nil {
			return ClientTransport{}, false
		}

		return ClientTransport{ClientRTPPort: rtp, ClientRTCPPort: rtcp}, true
	}

	return ClientTransport{}, false
}
