// internal/hub/hub_test.go
package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monopoly-bank-backend/internal/models"
)

// wsPair upgrades server-side connections and hands them to the test through
// a channel, returning a dialer for the client side.
func wsPair(t *testing.T) (*httptest.Server, chan *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	serverConns := make(chan *websocket.Conn, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)
	return srv, serverConns
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) models.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env models.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestBroadcastRoomReachesAllSubscribers(t *testing.T) {
	srv, serverConns := wsPair(t)
	h := New()

	alice := dial(t, srv)
	bob := dial(t, srv)
	h.Subscribe("R1", "p1", NewClient(<-serverConns))
	h.Subscribe("R1", "p2", NewClient(<-serverConns))
	assert.Equal(t, 2, h.SubscriberCount("R1"))

	h.BroadcastRoom("R1", "ping", "hello")

	for _, conn := range []*websocket.Conn{alice, bob} {
		env := readEnvelope(t, conn)
		assert.Equal(t, "ping", env.Event)
	}
}

func TestSendToUserIsPointToPoint(t *testing.T) {
	srv, serverConns := wsPair(t)
	h := New()

	alice := dial(t, srv)
	bob := dial(t, srv)
	h.Subscribe("R1", "p1", NewClient(<-serverConns))
	h.Subscribe("R1", "p2", NewClient(<-serverConns))

	h.SendToUser("R1", "p2", "secret", "for bob only")

	env := readEnvelope(t, bob)
	assert.Equal(t, "secret", env.Event)

	alice.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := alice.ReadMessage()
	assert.Error(t, err, "alice must not receive bob's message")
}

func TestSendToUnknownUserIsDropped(t *testing.T) {
	h := New()
	// No subscribers at all; must not panic.
	h.SendToUser("R1", "ghost", "x", nil)
	h.BroadcastRoom("R1", "x", nil)
}

func TestUnsubscribe(t *testing.T) {
	srv, serverConns := wsPair(t)
	h := New()

	dial(t, srv)
	c := NewClient(<-serverConns)
	h.Subscribe("R1", "p1", c)
	require.Equal(t, 1, h.SubscriberCount("R1"))

	// A stale connection may not unsubscribe a newer one for the same user.
	h.Unsubscribe("R1", "p1", NewClient(nil))
	assert.Equal(t, 1, h.SubscriberCount("R1"))

	h.Unsubscribe("R1", "p1", c)
	assert.Equal(t, 0, h.SubscriberCount("R1"))
}
