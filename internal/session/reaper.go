package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Reaper periodically expires sessions that have not been refreshed
// within their advertised timeout. This is additive instrumentation:
// the core session manager exposes only batch removal, leaving expiry
// policy to the caller; Reaper is one such caller, constructed
// explicitly rather than started implicitly by the manager.
type Reaper struct {
	mgr      *Manager
	interval time.Duration
}

// NewReaper builds a reaper that sweeps mgr for expired sessions every
// interval.
func NewReaper(mgr *Manager, interval time.Duration) *Reaper {
	return &Reaper{mgr: mgr, interval: interval}
}

// Run sweeps on a fixed interval until ctx is canceled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Reaper) sweep() {
	now := time.Now()

	r.mgr.mu.RLock()
	var expired []string
	for id, s := range r.mgr.sessions {
		if s.idleFor(now) > time.Duration(s.TimeoutSecs)*time.Second {
			expired = append(expired, id)
		}
	}
	r.mgr.mu.RUnlock()

	if len(expired) == 0 {
		return
	}

	removed := r.mgr.RemoveSessions(expired)
	log.Debug().Int("expired", removed).Msg("session reaper swept expired sessions")
}
