package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
)

// Client is one connected websocket. All writes to the underlying connection
// happen on the WritePump goroutine; the rest of the server only ever pushes
// onto the send channel.
type Client struct {
	ID string

	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// WritePump drains the send channel onto the wire until the channel is
// closed or a write fails, then closes the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Send marshals v and queues it for this client only.
func (c *Client) Send(v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return c.push(b)
}

func (c *Client) push(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// Close stops the write pump. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() { close(c.send) })
}
