package session

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const (
	serverPortMin = 5000
	serverPortMax = 65534
)

// Manager owns the session table and the server-side RTP/RTCP port
// allocator. All operations are safe under concurrent use from the
// acceptor, per-connection handlers, and frame-producing goroutines.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	nextID       atomic.Uint64
	nextServerPt atomic.Uint64
}

// NewManager builds an empty session manager with the server port
// counter starting at the bottom of its allocation range.
func NewManager() *Manager {
	m := &Manager{sessions: make(map[string]*Session)}
	m.nextServerPt.Store(serverPortMin)
	return m
}

// CreateSession always succeeds: it inserts a new session in Ready
// state with no transport, keyed by a fresh 16-hex-digit identifier.
func (m *Manager) CreateSession(uri string) *Session {
	id := m.nextID.Add(1) - 1
	s := newSession(fmt.Sprintf("%016X", id), uri)

	m.mu.Lock()
	m.sessions[s.ID] = s
	total := len(m.sessions)
	m.mu.Unlock()

	log.Debug().Str("session_id", s.ID).Str("uri", uri).Int("total_sessions", total).Msg("session created")
	return s
}

// GetSession looks up a session by id.
func (m *Manager) GetSession(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// RemoveSession deletes a session by id, reporting whether it existed.
func (m *Manager) RemoveSession(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	total := len(m.sessions)
	m.mu.Unlock()

	if ok {
		log.Debug().Str("session_id", id).Int("total_sessions", total).Msg("session removed")
	}
	return s, ok
}

// RemoveSessions batch-removes sessions by id and returns the count
// actually removed.
func (m *Manager) RemoveSessions(ids []string) int {
	m.mu.Lock()
	removed := 0
	for _, id := range ids {
		if _, ok := m.sessions[id]; ok {
			delete(m.sessions, id)
			removed++
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", remaining).Msg("batch session cleanup")
	}
	return removed
}

// AllocateServerPorts atomically takes the next (RTP, RTCP) port pair,
// advancing the counter by 2; the counter wraps to serverPortMin when
// it would exceed serverPortMax.
func (m *Manager) AllocateServerPorts() (rtpPort, rtcpPort int) {
	rtp := m.nextServerPt.Add(2) - 2

	if rtp > serverPortMax {
		log.Warn().Uint64("rtp_port", rtp).Msg("server port range exhausted, wrapping")
		m.nextServerPt.Store(serverPortMin)
		rtp = m.nextServerPt.Add(2) - 2
	}

	log.Trace().Uint64("rtp_port", rtp).Uint64("rtcp_port", rtp+1).Msg("allocated server ports")
	return int(rtp), int(rtp) + 1
}

// GetPlayingSessions returns a snapshot of sessions currently Playing.
func (m *Manager) GetPlayingSessions() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var playing []*Session
	for _, s := range m.sessions {
		if s.IsPlaying() {
			playing = append(playing, s)
		}
	}
	return playing
}
