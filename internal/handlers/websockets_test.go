package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

// newWSServer wires the authenticated /ws route against the given todos mock.
func newWSServer(t *testing.T, todos *mockTodos) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &service.Service{
		Authorization: &mockAuth{authorizeU: &models.User{ID: 1, Email: "a@x.com", IsActive: true}},
		Todos:         todos,
	}
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.identityMiddleware, h.wsConnect)
	return httptest.NewServer(r)
}

func wsDial(t *testing.T, srv *httptest.Server, rawQuery string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	hdr := http.Header{"Authorization": []string{"Bearer good-token"}}
	conn, _, err := dialer.Dial(u.String(), hdr)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_TodoStream_InitialAndPeriodic(t *testing.T) {
	todos := &mockTodos{
		listT: []models.Todo{
			{ID: 1, Title: "buy milk", OwnerID: 1},
			{ID: 2, Title: "walk dog", Completed: true, OwnerID: 1},
		},
	}
	srv := newWSServer(t, todos)
	defer srv.Close()

	conn := wsDial(t, srv, "interval_ms=20") // fast ticks for the test
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read initial snapshot
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "todos" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var list []models.Todo
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("unmarshal todos: %v", err)
	}
	if len(list) != 2 || list[0].Title != "buy milk" {
		t.Fatalf("unexpected snapshot: %+v", list)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "todos" {
		t.Fatalf("expected type=todos, got %+v", env)
	}
	if todos.lastListOwner != 1 {
		t.Fatalf("snapshots must be scoped to the resolved identity, got owner %d", todos.lastListOwner)
	}
}

func TestWebSocket_InitialListError_Closes(t *testing.T) {
	srv := newWSServer(t, &mockTodos{listErr: errors.New("boom")})
	defer srv.Close()

	conn := wsDial(t, srv, "")
	defer conn.Close()

	// The server should close immediately after the initial List fails
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func TestWebSocket_RejectsUnauthenticated(t *testing.T) {
	srv := newWSServer(t, &mockTodos{})
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(u.String(), nil) // no Authorization header
	if err == nil {
		t.Fatalf("expected handshake failure without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}
