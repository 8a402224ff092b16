package server

import (
	"net"
	"strconv"

	"github.com/streamforge/rtspd/internal/session"
	"github.com/streamforge/rtspd/pkg/rtpmedia"
	"github.com/streamforge/rtspd/pkg/rtsp"
	"github.com/streamforge/rtspd/pkg/sdpgen"
)

const publicMethods = "OPTIONS, DESCRIBE, SETUP, PLAY, PAUSE, TEARDOWN"

// Handler dispatches parsed RTSP requests to the method implementations
// in spec.md §4.6. It is stateless per request: all mutable state lives
// in the session manager, and the packetizer reference is shared and
// used only for SDP generation.
type Handler struct {
	sessions   *session.Manager
	packetizer rtpmedia.Packetizer
}

// NewHandler builds a handler backed by mgr and the given packetizer.
func NewHandler(mgr *session.Manager, p rtpmedia.Packetizer) *Handler {
	return &Handler{sessions: mgr, packetizer: p}
}

// Handle dispatches req to the method implementation named by its
// Method field, echoing its CSeq (or "0" if absent) on every response.
// clientIP is the peer address of the TCP connection the request
// arrived on, used to address SETUP's negotiated RTP transport.
func (h *Handler) Handle(req *rtsp.Request, clientIP net.IP) *rtsp.Response {
	cseq := req.CSeq()

	switch req.Method {
	case "OPTIONS":
		return h.handleOptions(cseq)
	case "DESCRIBE":
		return h.handleDescribe(cseq, req.URI)
	case "SETUP":
		return h.handleSetup(cseq, req, clientIP)
	case "PLAY":
		return h.handlePlay(cseq, req)
	case "PAUSE":
		return h.handlePause(cseq, req)
	case "TEARDOWN":
		return h.handleTeardown(cseq, req)
	default:
		return rtsp.NewResponse(501, "Not Implemented").AddHeader("CSeq", cseq)
	}
}

func (h *Handler) handleOptions(cseq string) *rtsp.Response {
	return rtsp.OK().
		AddHeader("CSeq", cseq).
		AddHeader("Public", publicMethods)
}

func (h *Handler) handleDescribe(cseq, uri string) *rtsp.Response {
	body, err := sdpgen.Generate(h.packetizer)
	if err != nil {
		return rtsp.NewResponse(500, "Internal Server Error").AddHeader("CSeq", cseq)
	}

	return rtsp.OK().
		AddHeader("CSeq", cseq).
		AddHeader("Content-Type", "application/sdp").
		AddHeader("Content-Base", uri).
		WithBody(body)
}

func (h *Handler) handleSetup(cseq string, req *rtsp.Request, clientIP net.IP) *rtsp.Response {
	transportHeader, ok := req.Header.Get("Transport")
	if !ok {
		return badRequest(cseq)
	}

	client, ok := rtsp.ParseTransportHeader(transportHeader)
	if !ok {
		return badRequest(cseq)
	}

	serverRTP, serverRTCP := h.sessions.AllocateServerPorts()

	s := h.sessions.CreateSession(req.URI)
	s.SetTransport(session.Transport{
		ClientRTPPort:  client.ClientRTPPort,
		ClientRTCPPort: client.ClientRTCPPort,
		ServerRTPPort:  serverRTP,
		ServerRTCPPort: serverRTCP,
		ClientAddr:     clientIP,
	})

	transportResp := "RTP/AVP;unicast;client_port=" +
		strconv.Itoa(client.ClientRTPPort) + "-" + strconv.Itoa(client.ClientRTCPPort) +
		";server_port=" + strconv.Itoa(serverRTP) + "-" + strconv.Itoa(serverRTCP)

	return rtsp.OK().
		AddHeader("CSeq", cseq).
		AddHeader("Session", s.SessionHeaderValue()).
		AddHeader("Transport", transportResp)
}

func (h *Handler) handlePlay(cseq string, req *rtsp.Request) *rtsp.Response {
	s, ok := h.requireSession(req)
	if !ok {
		return sessionNotFound(cseq)
	}

	s.SetState(session.Playing)
	s.Touch()

	return rtsp.OK().
		AddHeader("CSeq", cseq).
		AddHeader("Session", s.ID).
		AddHeader("Range", "npt=0.000-")
}

func (h *Handler) handlePause(cseq string, req *rtsp.Request) *rtsp.Response {
	s, ok := h.requireSession(req)
	if !ok {
		return sessionNotFound(cseq)
	}

	s.SetState(session.Paused)
	s.Touch()

	return rtsp.OK().
		AddHeader("CSeq", cseq).
		AddHeader("Session", s.ID)
}

func (h *Handler) handleTeardown(cseq string, req *rtsp.Request) *rtsp.Response {
	id, ok := req.Header.Get("Session")
	if !ok {
		return sessionNotFound(cseq)
	}

	if _, removed := h.sessions.RemoveSession(id); !removed {
		return sessionNotFound(cseq)
	}

	return rtsp.OK().AddHeader("CSeq", cseq)
}

// requireSession resolves the Session header against the manager.
func (h *Handler) requireSession(req *rtsp.Request) (*session.Session, bool) {
	id, ok := req.Header.Get("Session")
	if !ok {
		return nil, false
	}
	return h.sessions.GetSession(id)
}

func badRequest(cseq string) *rtsp.Response {
	return rtsp.NewResponse(400, "Bad Request").AddHeader("CSeq", cseq)
}

func sessionNotFound(cseq string) *rtsp.Response {
	return rtsp.NewResponse(454, "Session Not Found").AddHeader("CSeq", cseq)
}
