// Package ws is the connection layer: it upgrades HTTP requests to
// WebSocket connections, allocates dense integer tokens for them, and
// funnels every connection's frames onto one shared event channel so a
// single consumer goroutine can process them in order. Its per-client
// send channel and ping/pong keepalive follow the familiar
// gorilla/websocket hub/client pattern, paired with an
// original_source/idgenerator.rs-style token allocator.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub owns the set of connected clients and the shared event channel they
// publish to. Its client map is guarded by a mutex because Connect and
// Remove can run concurrently: Connect from whatever goroutine is serving
// an HTTP upgrade, remove from a Client's own ReadPump, and occasionally
// both during shutdown.
type Hub struct {
	upgrader websocket.Upgrader

	mu        sync.Mutex
	clients   map[int]*Client
	generator *IDGenerator

	sendCapacity int
	events       chan Event
}

// NewHub returns a Hub whose clients are given an outbound queue of
// sendCapacity messages before Push starts closing connections.
func NewHub(sendCapacity int) *Hub {
	return &Hub{
		upgrader:     websocket.Upgrader{},
		clients:      make(map[int]*Client),
		generator:    NewIDGenerator(),
		sendCapacity: sendCapacity,
		events:       make(chan Event, 256),
	}
}

// Events returns the channel every client's frames and connection errors
// are published to. The directory's Server is the sole consumer.
func (h *Hub) Events() <-chan Event {
	return h.events
}

// Connect upgrades an HTTP request to a WebSocket connection, allocates it
// a token, and starts its read/write pumps.
func (h *Hub) Connect(w http.ResponseWriter, r *http.Request) (int, error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	token := h.generator.Next()
	client := &Client{hub: h, Token: token, conn: conn, send: make(chan []byte, h.sendCapacity)}
	h.clients[token] = client
	h.mu.Unlock()

	go client.WritePump()
	go client.ReadPump()

	return token, nil
}

// Push delivers message to token's outbound queue, if the connection is
// still live.
func (h *Hub) Push(token int, message []byte) {
	h.mu.Lock()
	client := h.clients[token]
	h.mu.Unlock()

	if client != nil {
		client.Push(message)
	}
}

// Remove closes and forgets token's connection, recycling its id.
func (h *Hub) Remove(token int) {
	h.mu.Lock()
	client, ok := h.clients[token]
	if ok {
		delete(h.clients, token)
		h.generator.Recycle(token)
	}
	h.mu.Unlock()

	if ok {
		client.conn.Close()
	}
}

// remove is Remove without re-closing the socket, used by a Client's own
// ReadPump on exit (the connection is already being torn down).
func (h *Hub) remove(token int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[token]; ok {
		delete(h.clients, token)
		h.generator.Recycle(token)
	}
}

// ClientCount reports how many connections are currently live.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
