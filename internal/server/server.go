package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/streamforge/rtspd/pkg/rtsp"
)

const (
	serverReadBufferSize  = 4096
	serverWriteBufferSize = 4096
)

// Server accepts RTSP/1.0 TCP connections and dispatches each request
// through a Handler. Shutdown is cooperative via context cancellation:
// closing the listener unblocks the blocking Accept call, which is the
// Go-native replacement for a polled running flag.
type Server struct {
	handler  *Handler
	listener net.Listener

	mu      sync.Mutex
	running bool
}

// New builds a server that will dispatch accepted connections to h.
func New(h *Handler) *Server {
	return &Server{handler: h}
}

// Start binds addr and begins accepting connections in the background.
// It returns once the listener is bound; new connections are accepted
// until ctx is canceled or Stop is called, and connections already
// accepted keep running to their natural end.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	log.Info().Str("addr", addr).Msg("RTSP server listening")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	go s.acceptLoop()

	return nil
}

// Stop closes the listener, unblocking Accept and ending the accept
// loop; connections already in flight run to their natural end.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	log.Info().Msg("server stopping")
	return s.listener.Close()
}

func (s *Server) acceptLoop() {
	for {
		nconn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn().Err(err).Msg("accept failed")
			return
		}

		go s.serveConn(nconn)
	}
}

func (s *Server) serveConn(nconn net.Conn) {
	connID := strings.ReplaceAll(uuid.New().String(), "-", "")
	logger := log.With().Str("conn_id", connID).Str("peer", nconn.RemoteAddr().String()).Logger()

	defer nconn.Close()

	var clientIP net.IP
	if addr, ok := nconn.RemoteAddr().(*net.TCPAddr); ok {
		clientIP = addr.IP
	}

	br := bufio.NewReaderSize(nconn, serverReadBufferSize)
	bw := bufio.NewWriterSize(nconn, serverWriteBufferSize)

	for {
		raw, err := readMessage(br)
		if err != nil {
			if !errors.Is(err, errConnectionClosed) {
				logger.Debug().Err(err).Msg("connection read ended")
			}
			return
		}

		req, err := rtsp.ParseRequest(raw)
		if err != nil {
			logger.Warn().Err(err).Msg("parse error, dropping request")
			continue
		}

		if req.Version != "RTSP/1.0" {
			logger.Warn().Str("version", req.Version).Msg("non-conforming RTSP version, accepting")
		}

		logger.Debug().Str("method", req.Method).Str("uri", req.URI).Msg("request")

		resp := s.handler.Handle(req, clientIP)

		if _, err := bw.Write(resp.Serialize()); err != nil {
			logger.Debug().Err(err).Msg("write error, closing connection")
			return
		}
		if err := bw.Flush(); err != nil {
			logger.Debug().Err(err).Msg("flush error, closing connection")
			return
		}
	}
}

var errConnectionClosed = errors.New("server: connection closed")

// readMessage reads one RTSP message: lines up to and including the
// first blank line (CRLF or bare LF terminated). Any I/O error or EOF
// before that blank line, including one reached mid-message, ends the
// connection rather than dispatching a partial request.
func readMessage(br *bufio.Reader) (string, error) {
	var b strings.Builder

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return "", errConnectionClosed
		}
		b.WriteString(line)

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			return b.String(), nil
		}
	}
}
