package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mini-terrain/internal/terrain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcastReachesClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	a := dial(t, url)
	defer a.Close()
	b := dial(t, url)
	defer b.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, time.Millisecond)

	target := [3]int{1, 2, 3}
	hub.Broadcast(Stats{
		FPS:          60,
		Pipeline:     terrain.PipelineStats{Applied: 4, Ticks: 1},
		Buffers:      []terrain.BufferInfo{{ID: "chunk:0:0", Vertices: 36, Fragments: 1, Visible: true}},
		BuffersDrawn: 1,
		Player:       PlayerStats{Position: [3]float32{0.5, 1.5, 0.5}, Target: &target},
	})

	for _, conn := range []*websocket.Conn{a, b} {
		var got Stats
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, 60.0, got.FPS)
		assert.Equal(t, uint64(4), got.Pipeline.Applied)
		require.Len(t, got.Buffers, 1)
		assert.Equal(t, "chunk:0:0", got.Buffers[0].ID)
		require.NotNil(t, got.Player.Target)
		assert.Equal(t, target, *got.Player.Target)
	}
}

func TestLateClientGetsLastFrame(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Broadcast(Stats{VerticesDrawn: 72})

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	defer conn.Close()

	var got Stats
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 72, got.VerticesDrawn)
	assert.Nil(t, got.Player.Target)
}

func TestClosedClientIsDropped(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, time.Millisecond)
}

func TestSlowClientDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	// never reads, so its socket buffers fill and the writer stalls
	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, time.Millisecond)

	frame := Stats{Buffers: make([]terrain.BufferInfo, 2000)}
	for i := range frame.Buffers {
		frame.Buffers[i] = terrain.BufferInfo{ID: "chunk:0:0", Vertices: i}
	}

	start := time.Now()
	for i := 0; i < 500; i++ {
		hub.Broadcast(frame)
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.NotZero(t, hub.Dropped())
}

func TestListenAndClose(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Listen("127.0.0.1:0"))
	hub.Close()
	hub.Close()

	assert.Error(t, NewHub().Listen("bad address"))
}

func TestCloseDisconnectsClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, time.Millisecond)

	hub.Close()
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, time.Millisecond)
}
