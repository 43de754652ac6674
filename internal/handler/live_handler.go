package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coverpoint/clubhouse/internal/broker"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second // Time allowed to write a message to the peer
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // 54 seconds
	maxMessageSize = 1024                // clients only send pongs/close frames
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // add origin check in production
	},
}

// LiveHandler pushes match events (created, result published) to
// connected websocket clients. The feed is one-way: clients receive
// events and send nothing but keepalives.
type LiveHandler struct {
	clients map[*websocket.Conn]time.Time
	mu      sync.RWMutex
}

// NewLiveHandler subscribes to the broker and starts the fan-out loop.
func NewLiveHandler(events broker.EventBroker) (*LiveHandler, error) {
	h := &LiveHandler{
		clients: make(map[*websocket.Conn]time.Time),
	}

	ch, err := events.Subscribe()
	if err != nil {
		return nil, err
	}
	go h.fanOut(ch)

	return h, nil
}

// HandleLive upgrades the connection and keeps it registered until the
// client goes away.
// GET /api/live
func (h *LiveHandler) HandleLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = time.Now()
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Live feed client connected (total: %d)", total)

	defer h.removeClient(conn)
	h.keepAlive(conn)
}

func (h *LiveHandler) fanOut(events <-chan broker.Event) {
	for event := range events {
		h.mu.RLock()
		for conn := range h.clients {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Failed to send live event: %v", err)
				// keepAlive notices the broken connection and cleans up
			}
		}
		h.mu.RUnlock()
	}
}

// keepAlive pings the peer and reads until the connection drops. Any
// payload the client sends is discarded.
func (h *LiveHandler) keepAlive(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Live feed error: %v", err)
			}
			return
		}
	}
}

func (h *LiveHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if connectedAt, exists := h.clients[conn]; exists {
		delete(h.clients, conn)
		conn.Close()
		log.Printf("Live feed client disconnected (session duration: %v, remaining: %d)",
			time.Since(connectedAt).Round(time.Second), len(h.clients))
	}
}
