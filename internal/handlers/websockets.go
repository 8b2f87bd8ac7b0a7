package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	sendBuffer = 8
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsHub fans change notifications out to every connected client.
// Clients refetch on notification rather than receiving diffs, matching
// the refetch-after-mutation model of the HTTP client.
type wsHub struct {
	mu      sync.Mutex
	clients map[chan wsEnvelope]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[chan wsEnvelope]struct{})}
}

func (hub *wsHub) register() chan wsEnvelope {
	ch := make(chan wsEnvelope, sendBuffer)
	hub.mu.Lock()
	hub.clients[ch] = struct{}{}
	hub.mu.Unlock()
	return ch
}

func (hub *wsHub) unregister(ch chan wsEnvelope) {
	hub.mu.Lock()
	delete(hub.clients, ch)
	hub.mu.Unlock()
}

// broadcast delivers to every client, dropping for slow consumers
// rather than blocking the request that triggered the notification.
func (hub *wsHub) broadcast(env wsEnvelope) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for ch := range hub.clients {
		select {
		case ch <- env:
		default:
		}
	}
}

// notifyTodosChanged tells connected clients that userID's list changed.
func (h *Handler) notifyTodosChanged(userID string) {
	h.hub.broadcast(wsEnvelope{Type: "todos_changed", Data: gin.H{"user_id": userID}})
}

// @Summary      Todo change feed
// @Description  Streams an initial snapshot and a todos_changed note after every successful mutation.
// @Tags         system
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	events := h.hub.register()
	defer h.hub.unregister(events)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Send initial snapshot immediately, scoped like the HTTP endpoints.
	if err := h.sendSnapshot(c, conn); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	// Writer/select loop.
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case env := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(env); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// Helper: sendSnapshot fetches and writes the caller's current list with a write deadline.
func (h *Handler) sendSnapshot(c *gin.Context, conn *websocket.Conn) error {
	todos, err := h.services.List(c.Request.Context(), h.resolveCaller(c))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_list_failed", "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "todos", Data: todos})
}
