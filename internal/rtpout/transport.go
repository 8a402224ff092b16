// Package rtpout delivers RTP datagrams to RTSP clients over a single
// outbound UDP socket shared across all sessions.
package rtpout

import (
	"net"

	"github.com/rs/zerolog/log"

	"github.com/streamforge/rtspd/internal/session"
)

// Transport owns one UDP socket bound to an ephemeral port. Server-side
// RTP/RTCP ports allocated by the session manager are advertisements
// only; every outbound datagram egresses from this one socket.
type Transport struct {
	conn *net.UDPConn
}

// Bind opens an outbound UDP socket on 0.0.0.0 with an OS-chosen port.
func Bind() (*Transport, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, err
	}
	return &Transport{conn: conn}, nil
}

// Close releases the underlying socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// SendToSession sends payload to the session's negotiated client RTP
// address. It fails fast with a domain error — before any syscall — if
// the session is unknown, not playing, or has no transport configured.
func (t *Transport) SendToSession(mgr *session.Manager, id string, payload []byte) (int, error) {
	s, ok := mgr.GetSession(id)
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !s.IsPlaying() {
		return 0, ErrSessionNotPlaying
	}
	tr := s.GetTransport()
	if tr == nil {
		return 0, ErrTransportNotConfigured
	}

	addr := &net.UDPAddr{IP: tr.ClientAddr, Port: tr.ClientRTPPort}
	return t.conn.WriteToUDP(payload, addr)
}

// Broadcast sends payload to every session currently Playing with a
// configured transport. Per-destination failures are logged and
// skipped; Broadcast returns the count of successful sends.
func (t *Transport) Broadcast(mgr *session.Manager, payload []byte) int {
	playing := mgr.GetPlayingSessions()
	if len(playing) == 0 {
		return 0
	}

	sent := 0
	for _, s := range playing {
		tr := s.GetTransport()
		if tr == nil {
			continue
		}

		addr := &net.UDPAddr{IP: tr.ClientAddr, Port: tr.ClientRTPPort}
		if _, err := t.conn.WriteToUDP(payload, addr); err != nil {
			log.Warn().Str("session_id", s.ID).Str("addr", addr.String()).Err(err).Msg("failed to send RTP packet")
			continue
		}
		sent++
	}
	return sent
}
