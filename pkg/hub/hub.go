// Package hub fans dashboard updates out to websocket clients. A single
// goroutine owns the client set; producers never block on slow clients.
package hub

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/pkg/protocol"
)

// frame is one queued websocket write: a JSON protocol message or an
// annotated JPEG.
type frame struct {
	binary bool
	data   []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
// Only the Run goroutine touches the client set's send channels.
type Hub struct {
	name   string
	logger *slog.Logger

	clients    map[*Client]bool
	broadcast  chan frame
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	quitOnce   sync.Once

	// Guards clients for ClientCount
	mu sync.RWMutex

	running atomic.Bool
	dropped atomic.Uint64
}

// New creates a new Hub
func New(name string) *Hub {
	return &Hub{
		name:       name,
		logger:     log.With("hub", name),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan frame, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns after Stop.
// This should be called in a goroutine
func (h *Hub) Run() {
	h.running.Store(true)
	defer h.running.Store(false)

	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client connected", "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client disconnected", "clients", count)

		case f := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- f:
				default:
					// Too slow to keep up with the frame rate
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("dropped slow client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop ends Run and disconnects all clients.
func (h *Hub) Stop() {
	h.quitOnce.Do(func() { close(h.quit) })
}

// enqueue hands f to the Run loop. It never blocks: when the queue is
// full the update is dropped and counted.
func (h *Hub) enqueue(f frame) {
	select {
	case h.broadcast <- f:
	default:
		h.dropped.Add(1)
	}
}

// BroadcastMessage encodes a protocol message and sends it to every client
// as a text frame.
func (h *Hub) BroadcastMessage(msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	h.enqueue(frame{data: data})
	return nil
}

// BroadcastBinary sends data (an encoded camera frame) to every client.
func (h *Hub) BroadcastBinary(data []byte) {
	h.enqueue(frame{binary: true, data: data})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many broadcasts were discarded because the queue was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// IsRunning returns whether the hub is running
func (h *Hub) IsRunning() bool {
	return h.running.Load()
}
