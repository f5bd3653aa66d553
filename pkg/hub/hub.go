// Package hub pushes pin change events to every connected board over
// websockets. Fire-and-forget: a failed send is logged and dropped, and a
// board that misses events simply reloads on its next fetch.
package hub

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/zionren/corkboard/pkg/envelope"
)

const pinsTable = "pins"

type clientConn struct {
	conn     *websocket.Conn
	viewerID string
	mu       sync.Mutex
}

func (cc *clientConn) send(data []byte) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if err := cc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[HUB] send error viewer=%s: %v", cc.viewerID, err)
	}
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*clientConn
}

func New() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*clientConn),
	}
}

// HandleClientConn registers a board connection and blocks until it closes.
// Boards are read-mostly consumers; the only inbound message honored is
// "ping", everything else is ignored.
func (h *Hub) HandleClientConn(c *websocket.Conn, viewerID string) {
	cc := &clientConn{conn: c, viewerID: viewerID}

	h.mu.Lock()
	h.clients[c] = cc
	h.mu.Unlock()

	log.Printf("[HUB] Client connected: viewer=%s total=%d", viewerID, h.ClientCount())

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
		log.Printf("[HUB] Client disconnected: viewer=%s total=%d", viewerID, h.ClientCount())
	}()

	for {
		mt, raw, err := c.ReadMessage()
		if err != nil {
			return
		}
		if mt == websocket.TextMessage && string(raw) == `ping` {
			cc.send([]byte(`pong`))
		}
	}
}

// NotifyInsert broadcasts a pin creation.
func (h *Hub) NotifyInsert(record interface{}) {
	h.broadcast(envelope.KindInsert, record, nil)
}

// NotifyUpdate broadcasts a pin edit with the prior row attached.
func (h *Hub) NotifyUpdate(record, previous interface{}) {
	h.broadcast(envelope.KindUpdate, record, previous)
}

// NotifyDelete broadcasts a removal; the payload is the deleted row.
func (h *Hub) NotifyDelete(previous interface{}) {
	h.broadcast(envelope.KindDelete, nil, previous)
}

func (h *Hub) broadcast(kind envelope.Kind, record, previous interface{}) {
	env, err := envelope.NewChange(kind, pinsTable, record, previous)
	if err != nil {
		return
	}
	raw, err := env.Marshal()
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, cc := range h.clients {
		cc.send(raw)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
