// Package rtsp implements the RTSP/1.0 wire codec: request parsing,
// response serialization, and header lookup (RFC 2326).
package rtsp

import "errors"

// Parse error kinds returned by ParseRequest.
var (
	ErrEmptyRequest       = errors.New("rtsp: empty request")
	ErrInvalidRequestLine = errors.New("rtsp: invalid request line")
	ErrInvalidHeader      = errors.New("rtsp: invalid header line")
)
