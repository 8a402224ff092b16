package server

import "errors"

var (
	// ErrNotStarted reports an operation attempted before Start. No
	// method of Server returns it; RTP delivery lives in rtpout and
	// does not depend on the server running.
	ErrNotStarted = errors.New("server: not started")

	// ErrAlreadyRunning is returned by Start when called on a server
	// that is already accepting connections.
	ErrAlreadyRunning = errors.New("server: already running")
)
