package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 50 * time.Second

	// sendQueueSize bounds how far a viewer may fall behind before the
	// hub drops it.
	sendQueueSize = 64
)

// Client is one connected dashboard viewer. It holds no state beyond the
// transport handle and its outbound queue.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClient wraps an upgraded websocket connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
}

// Send queues an event for this viewer only. Reports false when the
// viewer is gone or its queue is full.
func (c *Client) Send(event string, payload interface{}) bool {
	message, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		return false
	}
	return c.enqueue(message)
}

// enqueue never blocks; a full queue means the viewer cannot keep up.
func (c *Client) enqueue(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// shutdown closes the outbound queue exactly once.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// WritePump drains the outbound queue onto the socket and keeps the
// connection alive with pings. It exits when the queue is closed or a
// write fails; the read side notices the closed socket and unregisters.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
