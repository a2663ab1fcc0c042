package hub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func dialViewer(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Add(conn)
	}))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) Msg {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Msg
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestBroadcastReachesAllViewers(t *testing.T) {
	h := New()
	v1 := dialViewer(t, h)
	v2 := dialViewer(t, h)
	require.Eventually(t, func() bool { return h.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	h.Broadcast(Msg{Type: "overlay", Data: map[string]any{"victories": float64(1)}})
	for _, conn := range []*websocket.Conn{v1, v2} {
		m := readMsg(t, conn)
		assert.Equal(t, "overlay", m.Type)
	}
}

func TestBroadcastDropsDeadViewers(t *testing.T) {
	h := New()
	v1 := dialViewer(t, h)
	v2 := dialViewer(t, h)
	require.Eventually(t, func() bool { return h.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	// Kill one viewer's transport, then broadcast until the hub notices.
	require.NoError(t, v2.Close())
	require.Eventually(t, func() bool {
		h.Broadcast(Msg{Type: "overlay"})
		return h.Count() == 1
	}, 2*time.Second, 20*time.Millisecond)

	m := readMsg(t, v1)
	assert.Equal(t, "overlay", m.Type)
}
