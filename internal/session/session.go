// Package session tracks RTSP sessions created by SETUP and consumed
// by PLAY/PAUSE/TEARDOWN, plus the server-side RTP/RTCP port allocator.
package session

import (
	"net"
	"strconv"
	"sync"
	"time"
)

// State is an RTSP session's lifecycle state (RFC 2326 §A.1).
type State int

const (
	Ready State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// DefaultTimeoutSecs is the Session header timeout advertised when a
// session is created, absent any caller override.
const DefaultTimeoutSecs = 60

// Transport holds the negotiated RTP/RTCP transport parameters for one
// session (RFC 2326 §12.39).
type Transport struct {
	ClientRTPPort  int
	ClientRTCPPort int
	ServerRTPPort  int
	ServerRTCPPort int
	ClientAddr     net.IP
}

// Session is one SETUP-negotiated media delivery session. A single
// per-session RWMutex guards transport, state and last activity
// together; reads of one session never contend with other sessions,
// but state and transport are not locked independently.
type Session struct {
	ID          string
	URI         string
	TimeoutSecs int

	mu           sync.RWMutex
	transport    *Transport
	state        State
	lastActivity time.Time
}

func newSession(id, uri string) *Session {
	return &Session{
		ID:           id,
		URI:          uri,
		TimeoutSecs:  DefaultTimeoutSecs,
		state:        Ready,
		lastActivity: time.Now(),
	}
}

// SetTransport records the transport negotiated for this session.
func (s *Session) SetTransport(t Transport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport = &t
}

// GetTransport returns a copy of the session's transport, or nil if SETUP has not
// configured one.
func (s *Session) GetTransport() *Transport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.transport == nil {
		return nil
	}
	t := *s.transport
	return &t
}

// SetState transitions the session to a new lifecycle state.
func (s *Session) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsPlaying reports whether the session is in the Playing state.
func (s *Session) IsPlaying() bool {
	return s.State() == Playing
}

// Touch refreshes the session's last-activity timestamp; the reaper
// uses this to decide when a session has gone stale.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

func (s *Session) idleFor(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastActivity)
}

// SessionHeaderValue returns the value for a Session response header,
// e.g. "0000000000000001;timeout=60".
func (s *Session) SessionHeaderValue() string {
	return s.ID + ";timeout=" + strconv.Itoa(s.TimeoutSecs)
}
