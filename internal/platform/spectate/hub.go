// Package spectate streams board snapshots of a running session to websocket
// clients. The hub observes the session and pushes a frame after each batch of
// mutations; spectators are read-only.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

const (
	// DefaultInterval is how often the hub checks for changes.
	DefaultInterval = 50 * time.Millisecond

	sendBuffer = 16
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Frame is one message of the feed.
type Frame struct {
	Type string `json:"type"` // always "frame"
	engine.Snapshot
	Rows []string `json:"rows"`
}

// NewFrame builds a frame from a snapshot.
func NewFrame(sn engine.Snapshot) Frame {
	return Frame{Type: "frame", Snapshot: sn, Rows: sn.Rows()}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans frames of the watched session out to all connected spectators.
// It implements engine.Observer.
type Hub struct {
	logger   *log.Logger
	interval time.Duration
	dirty    atomic.Bool

	mu      sync.Mutex
	session *engine.Session
	clients map[*client]struct{}
	last    []byte
}

// NewHub creates a hub. A nil logger discards log output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger:   logger,
		interval: DefaultInterval,
		clients:  make(map[*client]struct{}),
	}
}

// Watch makes s the session streamed to spectators, replacing any previous
// one, and subscribes the hub to it.
func (h *Hub) Watch(s *engine.Session) {
	h.mu.Lock()
	h.session = s
	h.mu.Unlock()

	s.Subscribe(h)
	h.dirty.Store(true)
}

// Notify marks the board as changed. It is called under the session lock,
// so the snapshot is taken later by Flush.
func (h *Hub) Notify(engine.Event) {
	h.dirty.Store(true)
}

// Flush broadcasts a new frame if the board changed since the last one.
// It reports whether a frame was sent.
func (h *Hub) Flush() bool {
	if !h.dirty.Swap(false) {
		return false
	}

	h.mu.Lock()
	s := h.session
	h.mu.Unlock()
	if s == nil {
		return false
	}

	data, err := json.Marshal(NewFrame(s.Snapshot()))
	if err != nil {
		h.logger.Error("cannot encode frame", "error", err)
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for c := range h.clients {
		h.sendLocked(c, data)
	}
	return true
}

// Run flushes changes every interval until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.Flush()
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and streams frames until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{ws: ws, send: make(chan []byte, sendBuffer)}
	h.register(c)
	h.logger.Info("spectator connected", "remote", ws.RemoteAddr().String(), "clients", h.Clients())

	go c.writePump()
	c.readPump()

	h.unregister(c)
	h.logger.Info("spectator disconnected", "remote", ws.RemoteAddr().String(), "clients", h.Clients())
}

// ServeBoard writes the current board as plain text rows.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	s := h.session
	h.mu.Unlock()

	if s == nil {
		http.Error(w, "no game running", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, s.Snapshot().String()+"\n")
}

// Handler returns the HTTP routes of the feed: /ws and /board.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/board", h.ServeBoard)
	return mux
}

// ListenAndServe serves the feed on addr and flushes frames until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("spectator feed listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	if h.last == nil && h.session != nil {
		if data, err := json.Marshal(NewFrame(h.session.Snapshot())); err == nil {
			h.last = data
		}
	}
	if h.last != nil {
		h.sendLocked(c, h.last)
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// sendLocked queues data for c, dropping clients that cannot keep up.
func (h *Hub) sendLocked(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.logger.Warn("dropping slow spectator", "remote", c.ws.RemoteAddr().String())
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
