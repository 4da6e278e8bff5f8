package signal

import (
	"net/http"
	"sync"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured properly for production
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// spectator wraps one connection with a write mutex. The websocket protocol
// allows only one concurrent writer per connection, and events arrive from
// several goroutines (simulation timers, HTTP handlers, the ping loop).
type spectator struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *spectator) writeJSON(v interface{}, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(timeout))
	return s.conn.WriteJSON(v)
}

func (s *spectator) writePing(timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(timeout))
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

// LiveEventHub fans live session events (viewer count, comments, likes,
// phase changes) out to connected spectators over WebSocket. It implements
// ports.LiveEventSink for the live session controller.
type LiveEventHub struct {
	mu    sync.RWMutex
	conns map[*spectator]struct{}

	pingInterval time.Duration
	writeTimeout time.Duration

	onCountChange func(int)

	logger *zap.SugaredLogger
}

func NewLiveEventHub(logger *zap.SugaredLogger) *LiveEventHub {
	return &LiveEventHub{
		conns:        make(map[*spectator]struct{}),
		pingInterval: 30 * time.Second,
		writeTimeout: 10 * time.Second,
		logger:       logger,
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *LiveEventHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	spec := &spectator{conn: conn}

	h.mu.Lock()
	h.conns[spec] = struct{}{}
	count := len(h.conns)
	notify := h.onCountChange
	h.mu.Unlock()

	h.logger.Debugw("spectator connected", "connections", count)
	if notify != nil {
		notify(count)
	}

	go h.ping(spec)
	h.readLoop(spec)
}

// Publish sends the event to every connected spectator, dropping
// connections whose writes fail.
func (h *LiveEventHub) Publish(event domain.LiveEvent) {
	h.mu.RLock()
	conns := make([]*spectator, 0, len(h.conns))
	for spec := range h.conns {
		conns = append(conns, spec)
	}
	h.mu.RUnlock()

	for _, spec := range conns {
		if err := spec.writeJSON(event, h.writeTimeout); err != nil {
			h.logger.Debugw("dropping spectator after write failure", "error", err)
			h.remove(spec)
		}
	}
}

// SetCountListener registers a callback invoked with the spectator count
// after every connect and disconnect. Set it before serving connections.
func (h *LiveEventHub) SetCountListener(fn func(int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCountChange = fn
}

// ConnectionCount reports the number of connected spectators.
func (h *LiveEventHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every spectator.
func (h *LiveEventHub) Close() {
	h.mu.Lock()
	conns := make([]*spectator, 0, len(h.conns))
	for spec := range h.conns {
		conns = append(conns, spec)
	}
	h.conns = make(map[*spectator]struct{})
	h.mu.Unlock()

	for _, spec := range conns {
		spec.conn.Close()
	}
}

// readLoop drains incoming frames so close and pong frames are processed;
// spectators never send application messages.
func (h *LiveEventHub) readLoop(spec *spectator) {
	defer h.remove(spec)

	for {
		if _, _, err := spec.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LiveEventHub) ping(spec *spectator) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := spec.writePing(h.writeTimeout); err != nil {
			h.remove(spec)
			return
		}
	}
}

func (h *LiveEventHub) remove(spec *spectator) {
	h.mu.Lock()
	_, present := h.conns[spec]
	delete(h.conns, spec)
	count := len(h.conns)
	notify := h.onCountChange
	h.mu.Unlock()

	if present {
		spec.conn.Close()
		if notify != nil {
			notify(count)
		}
	}
}

var _ ports.LiveEventSink = (*LiveEventHub)(nil)
