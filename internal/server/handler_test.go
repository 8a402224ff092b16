package server

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamforge/rtspd/internal/session"
	"github.com/streamforge/rtspd/pkg/rtpmedia"
	"github.com/streamforge/rtspd/pkg/rtsp"
)

func newTestHandler() (*Handler, *session.Manager) {
	mgr := session.NewManager()
	p := rtpmedia.NewH264PacketizerWithSSRC(96, 1)
	return NewHandler(mgr, p), mgr
}

func mustParse(t *testing.T, raw string) *rtsp.Request {
	t.Helper()
	req, err := rtsp.ParseRequest(raw)
	require.NoError(t, err)
	return req
}

func TestHandler_Options(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "OPTIONS rtsp://host/stream RTSP/1.0\r\nCSeq: 1\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 200, resp.StatusCode)
	pub, ok := resp.Header.Get("Public")
	require.True(t, ok)
	assert.Contains(t, pub, "OPTIONS")
	assert.Contains(t, pub, "TEARDOWN")
	cseq, _ := resp.Header.Get("CSeq")
	assert.Equal(t, "1", cseq)
}

func TestHandler_Describe(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "DESCRIBE rtsp://host/stream RTSP/1.0\r\nCSeq: 2\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 200, resp.StatusCode)
	ct, _ := resp.Header.Get("Content-Type")
	assert.Equal(t, "application/sdp", ct)
	base, _ := resp.Header.Get("Content-Base")
	assert.Equal(t, "rtsp://host/stream", base)
	assert.Contains(t, string(resp.Body), "m=video 0 RTP/AVP 96")
}

func TestHandler_Setup_Success(t *testing.T) {
	h, mgr := newTestHandler()
	req := mustParse(t, "SETUP rtsp://host/stream RTSP/1.0\r\nCSeq: 3\r\nTransport: RTP/AVP;unicast;client_port=5000-5001\r\n\r\n")

	resp := h.Handle(req, net.ParseIP("10.0.0.5"))
	assert.Equal(t, 200, resp.StatusCode)

	sessionHeader, ok := resp.Header.Get("Session")
	require.True(t, ok)
	assert.Contains(t, sessionHeader, ";timeout=60")

	transportHeader, ok := resp.Header.Get("Transport")
	require.True(t, ok)
	assert.Contains(t, transportHeader, "client_port=5000-5001")
	assert.Contains(t, transportHeader, "server_port=")

	id, _, _ := cutSemicolon(sessionHeader)
	s, found := mgr.GetSession(id)
	require.True(t, found)
	assert.Equal(t, session.Ready, s.State())
	assert.NotNil(t, s.GetTransport())
}

func TestHandler_Setup_MissingTransportHeader(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "SETUP rtsp://host/stream RTSP/1.0\r\nCSeq: 3\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandler_Setup_MalformedTransportHeader(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "SETUP rtsp://host/stream RTSP/1.0\r\nCSeq: 3\r\nTransport: RTP/AVP;unicast\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func setupSession(t *testing.T, h *Handler) string {
	t.Helper()
	req := mustParse(t, "SETUP rtsp://host/stream RTSP/1.0\r\nCSeq: 1\r\nTransport: RTP/AVP;unicast;client_port=5000-5001\r\n\r\n")
	resp := h.Handle(req, net.ParseIP("10.0.0.5"))
	require.Equal(t, 200, resp.StatusCode)
	header, _ := resp.Header.Get("Session")
	id, _, _ := cutSemicolon(header)
	return id
}

func cutSemicolon(s string) (string, string, bool) {
	for i, c := range s {
		if c == ';' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func TestHandler_Play_Success(t *testing.T) {
	h, mgr := newTestHandler()
	id := setupSession(t, h)

	req := mustParse(t, "PLAY rtsp://host/stream RTSP/1.0\r\nCSeq: 4\r\nSession: "+id+"\r\n\r\n")
	resp := h.Handle(req, nil)

	assert.Equal(t, 200, resp.StatusCode)
	rangeHdr, _ := resp.Header.Get("Range")
	assert.Equal(t, "npt=0.000-", rangeHdr)

	s, ok := mgr.GetSession(id)
	require.True(t, ok)
	assert.True(t, s.IsPlaying())
}

func TestHandler_Play_UnknownSession(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "PLAY rtsp://host/stream RTSP/1.0\r\nCSeq: 4\r\nSession: DEADBEEFDEADBEEF\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 454, resp.StatusCode)
}

func TestHandler_Play_MissingSessionHeader(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "PLAY rtsp://host/stream RTSP/1.0\r\nCSeq: 4\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 454, resp.StatusCode)
}

func TestHandler_Pause(t *testing.T) {
	h, mgr := newTestHandler()
	id := setupSession(t, h)

	playReq := mustParse(t, "PLAY rtsp://host/stream RTSP/1.0\r\nCSeq: 4\r\nSession: "+id+"\r\n\r\n")
	h.Handle(playReq, nil)

	pauseReq := mustParse(t, "PAUSE rtsp://host/stream RTSP/1.0\r\nCSeq: 5\r\nSession: "+id+"\r\n\r\n")
	resp := h.Handle(pauseReq, nil)

	assert.Equal(t, 200, resp.StatusCode)
	s, _ := mgr.GetSession(id)
	assert.False(t, s.IsPlaying())
	assert.Equal(t, session.Paused, s.State())
}

func TestHandler_Teardown(t *testing.T) {
	h, mgr := newTestHandler()
	id := setupSession(t, h)

	req := mustParse(t, "TEARDOWN rtsp://host/stream RTSP/1.0\r\nCSeq: 6\r\nSession: "+id+"\r\n\r\n")
	resp := h.Handle(req, nil)

	assert.Equal(t, 200, resp.StatusCode)
	_, ok := mgr.GetSession(id)
	assert.False(t, ok)
}

func TestHandler_UnsupportedMethod(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "ANNOUNCE rtsp://host/stream RTSP/1.0\r\nCSeq: 7\r\n\r\n")

	resp := h.Handle(req, nil)
	assert.Equal(t, 501, resp.StatusCode)
}

func TestHandler_EveryResponseEchoesCSeq(t *testing.T) {
	h, _ := newTestHandler()
	req := mustParse(t, "OPTIONS rtsp://host/stream RTSP/1.0\r\n\r\n")

	resp := h.Handle(req, nil)
	cseq, ok := resp.Header.Get("CSeq")
	require.True(t, ok)
	assert.Equal(t, "0", cseq)
}
