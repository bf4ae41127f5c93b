// Package hub fans snapshots out to every connected websocket client.
package hub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub holds the set of live clients. Broadcast never blocks on a slow
// client: each client has a buffered send channel and messages to a full
// buffer are dropped, since the next snapshot supersedes them anyway.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func New() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes the client and shuts down its write pump.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.Close()
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast marshals v once and pushes it to every client.
func (h *Hub) Broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("broadcast marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.push(b) {
			zap.L().Warn("dropping broadcast for slow client", zap.String("conn_id", c.ID))
		}
	}
}
