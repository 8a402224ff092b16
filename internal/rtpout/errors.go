package rtpout

import "errors"

var (
	ErrSessionNotFound        = errors.New("rtpout: session not found")
	ErrSessionNotPlaying      = errors.New("rtpout: session not playing")
	ErrTransportNotConfigured = errors.New("rtpout: transport not configured")
)
