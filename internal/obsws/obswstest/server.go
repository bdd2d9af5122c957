// Package obswstest provides an in-process obs-websocket server for tests.
package obswstest

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/fufuok/cmap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// obs-websocket request status codes used by tests.
const (
	StatusSuccess             = 100
	StatusUnknownRequestType  = 204
	StatusStudioModeNotActive = 506
	StatusResourceNotFound    = 600
)

const (
	salt      = "lM1GncleQOaCu9lT1yeUZhFYnqhsLLP1G5lAGo3ixaI="
	challenge = "+IxH4CnCiqpX1rM9scsNynZzbOe4KhDeYcTNS3PDaeY="
)

// Call is one request received by the server.
type Call struct {
	RequestType string
	Data        json.RawMessage
}

// Reply is the server answer to one request. A zero Code means success.
type Reply struct {
	Data    any
	Code    int
	Comment string
}

// HandlerFunc answers one request type.
type HandlerFunc func(data json.RawMessage) Reply

// Server speaks the Hello/Identify handshake and answers requests from registered handlers.
type Server struct {
	URL  string
	Addr string // host:port
	Host string
	Port uint16

	password string
	handlers *cmap.MapOf[string, HandlerFunc]

	mu    sync.Mutex
	calls []Call
	srv   *httptest.Server
}

// NewServer starts a server. An empty password disables authentication.
func NewServer(password string) *Server {
	s := &Server{
		password: password,
		handlers: cmap.NewOf[string, HandlerFunc](),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))

	addr := s.srv.Listener.Addr().(*net.TCPAddr)
	s.Host = addr.IP.String()
	s.Port = uint16(addr.Port)
	s.Addr = net.JoinHostPort(s.Host, strconv.Itoa(addr.Port))
	s.URL = "ws://" + s.Addr
	return s
}

// Handle registers fn for requestType, replacing any previous handler.
func (s *Server) Handle(requestType string, fn HandlerFunc) {
	s.handlers.Set(requestType, fn)
}

// Respond registers a fixed successful reply.
func (s *Server) Respond(requestType string, data any) {
	s.Handle(requestType, func(json.RawMessage) Reply {
		return Reply{Data: data}
	})
}

// Fail registers a fixed failing reply.
func (s *Server) Fail(requestType string, code int, comment string) {
	s.Handle(requestType, func(json.RawMessage) Reply {
		return Reply{Code: code, Comment: comment}
	})
}

// Calls returns every request received so far, in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// RequestTypes returns the request types received so far, in order.
func (s *Server) RequestTypes() []string {
	calls := s.Calls()
	out := make([]string, 0, len(calls))
	for _, call := range calls {
		out = append(out, call.RequestType)
	}
	return out
}

func (s *Server) Close() {
	s.srv.CloseClientConnections()
	s.srv.Close()
}

type frame struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

type outgoing struct {
	Op int `json:"op"`
	D  any `json:"d"`
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols: []string{"obswebsocket.json"},
	})
	if err != nil {
		return
	}
	defer conn.CloseNow()
	ctx := r.Context()

	hello := map[string]any{"obsWebSocketVersion": "5.5.0", "rpcVersion": 1}
	if s.password != "" {
		hello["authentication"] = map[string]string{"challenge": challenge, "salt": salt}
	}
	if err := wsjson.Write(ctx, conn, outgoing{Op: 0, D: hello}); err != nil {
		return
	}

	var f frame
	if err := wsjson.Read(ctx, conn, &f); err != nil || f.Op != 1 {
		return
	}
	var ident struct {
		RPCVersion     int    `json:"rpcVersion"`
		Authentication string `json:"authentication"`
	}
	if err := json.Unmarshal(f.D, &ident); err != nil {
		return
	}
	if s.password != "" && ident.Authentication != expectedAuth(s.password) {
		_ = conn.Close(websocket.StatusCode(4009), "Authentication failed.")
		return
	}
	if err := wsjson.Write(ctx, conn, outgoing{Op: 2, D: map[string]int{"negotiatedRpcVersion": 1}}); err != nil {
		return
	}

	for {
		var in frame
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			return
		}
		if in.Op != 6 {
			continue
		}
		var req struct {
			RequestType string          `json:"requestType"`
			RequestID   string          `json:"requestId"`
			RequestData json.RawMessage `json:"requestData"`
		}
		if err := json.Unmarshal(in.D, &req); err != nil {
			return
		}

		reply := s.dispatch(req.RequestType, req.RequestData)
		code := reply.Code
		if code == 0 {
			code = StatusSuccess
		}
		resp := map[string]any{
			"requestType": req.RequestType,
			"requestId":   req.RequestID,
			"requestStatus": map[string]any{
				"result":  code == StatusSuccess,
				"code":    code,
				"comment": reply.Comment,
			},
		}
		if reply.Data != nil {
			resp["responseData"] = reply.Data
		}
		if err := wsjson.Write(ctx, conn, outgoing{Op: 7, D: resp}); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(requestType string, data json.RawMessage) Reply {
	s.mu.Lock()
	s.calls = append(s.calls, Call{RequestType: requestType, Data: data})
	s.mu.Unlock()

	fn, ok := s.handlers.Get(requestType)
	if !ok {
		return Reply{Code: StatusUnknownRequestType, Comment: "Your request type is not valid."}
	}
	return fn(data)
}

func expectedAuth(password string) string {
	secret := sha256.Sum256([]byte(password + salt))
	auth := sha256.Sum256([]byte(base64.StdEncoding.EncodeToString(secret[:]) + challenge))
	return base64.StdEncoding.EncodeToString(auth[:])
}
