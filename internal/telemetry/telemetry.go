// Package telemetry streams engine statistics to websocket clients as JSON frames.
package telemetry

import (
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"mini-terrain/internal/profiling"
	"mini-terrain/internal/terrain"

	"github.com/gorilla/websocket"
)

const writeTimeout = time.Second

// PlayerStats is the player part of a Stats frame.
type PlayerStats struct {
	Position [3]float32 `json:"position"`
	Falling  bool       `json:"falling"`
	Target   *[3]int    `json:"target,omitempty"`
}

// Stats is one telemetry frame.
type Stats struct {
	Time          time.Time             `json:"time"`
	FPS           float64               `json:"fps"`
	Pipeline      terrain.PipelineStats `json:"pipeline"`
	Buffers       []terrain.BufferInfo  `json:"buffers"`
	BuffersDrawn  int                   `json:"buffersDrawn"`
	VerticesDrawn int                   `json:"verticesDrawn"`
	Player        PlayerStats           `json:"player"`
	Profile       []profiling.Sample    `json:"profile"`
}

// sendQueue is how many frames a client may fall behind before frames are dropped.
const sendQueue = 4

type client struct {
	conn *websocket.Conn
	send chan *Stats
}

// writeLoop runs on its own goroutine per client so a slow reader never holds up
// Broadcast. It returns when send is closed or a write fails.
func (c *client) writeLoop() {
	for s := range c.send {
		if err := write(c.conn, s); err != nil {
			c.conn.Close()
			return
		}
	}
}

// Hub keeps the connected clients and fans frames out to them.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
	last    *Stats
	srv     *http.Server

	dropped atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// local debugging tool, any origin may read
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*client),
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[telemetry] upgrade error:", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan *Stats, sendQueue)}
	h.mu.Lock()
	h.clients[conn] = c
	if h.last != nil {
		c.send <- h.last
	}
	h.mu.Unlock()
	defer h.remove(conn)

	go c.writeLoop()

	// Clients do not send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var ce *websocket.CloseError
			if !errors.As(err, &ce) {
				log.Println("[telemetry] read error:", err)
			}
			return
		}
	}
}

func write(conn *websocket.Conn, s *Stats) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(s)
}

// remove unregisters conn and stops its writer. Only remove closes send, and it holds
// the write lock, so Broadcast never sends on a closed channel.
func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast queues s for every client without blocking. A client whose queue is full
// misses this frame.
func (h *Hub) Broadcast(s Stats) {
	h.mu.Lock()
	h.last = &s
	h.mu.Unlock()

	h.mu.RLock()
	for _, c := range h.clients {
		select {
		case c.send <- &s:
		default:
			h.dropped.Add(1)
		}
	}
	h.mu.RUnlock()
}

// Dropped returns how many client frames were skipped because a queue was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Listen serves the hub at /ws on addr in the background.
func (h *Hub) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	h.mu.Lock()
	h.srv = srv
	h.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("[telemetry] server error:", err)
		}
	}()
	log.Printf("[telemetry] streaming on ws://%s/ws", ln.Addr())
	return nil
}

// Close stops the listener and disconnects every client. Safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	srv := h.srv
	h.srv = nil
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	if srv != nil {
		srv.Close()
	}
	for _, conn := range conns {
		conn.Close()
	}
}
