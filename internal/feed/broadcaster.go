package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nft_market/internal/event"
	"nft_market/internal/infra"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// Broadcaster fans committed market events out to websocket subscribers.
// Slow clients are dropped rather than allowed to stall the feed.
type Broadcaster struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Broadcast marshals the event and queues it to every subscriber.
func (b *Broadcaster) Broadcast(ev event.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("Failed to marshal feed event", slog.Any("error", err))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.send <- payload:
		default:
			// Buffer full: the client is too slow, cut it loose.
			b.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request and subscribes the connection to the feed.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Feed upgrade failed", slog.Any("error", err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()
	infra.GlobalMetrics.IncrementConnections()

	go b.writePump(c)
	go b.readPump(c)
}

// Close disconnects all subscribers.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		b.removeLocked(c)
	}
}

// removeLocked unsubscribes a client. Caller holds the mutex. Closing the
// send channel terminates the client's writePump, which closes the conn.
func (b *Broadcaster) removeLocked(c *client) {
	if _, ok := b.clients[c]; !ok {
		return
	}
	delete(b.clients, c)
	close(c.send)
	infra.GlobalMetrics.DecrementConnections()
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(c)
}

func (b *Broadcaster) writePump(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			b.remove(c)
			// Drain until the channel is closed so Broadcast never blocks.
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, nil)
}

// readPump discards inbound frames; the feed is one-way. It exists to detect
// client disconnects promptly.
func (b *Broadcaster) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			b.remove(c)
			return
		}
	}
}
