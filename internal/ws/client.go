package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client wraps one upgraded WebSocket connection. Its Token is the dense
// integer identity the rest of the system uses instead of the socket
// itself. send is the bounded
// outbound queue that gives the connection its backpressure: a full queue
// closes the connection rather than blocking the directory's single
// mutator goroutine.
type Client struct {
	hub   *Hub
	Token int
	conn  *websocket.Conn
	send  chan []byte
}

// Push enqueues message for delivery. It never blocks: if the outbound
// queue is full the connection is closed instead, giving the connection
// its backpressure.
func (c *Client) Push(message []byte) {
	select {
	case c.send <- message:
	default:
		c.conn.Close()
	}
}

// ReadPump is the connection's sole reader: it drains frames in a loop,
// translating each into an Event on the hub's shared channel, until the
// connection errors or the peer closes it. This keeps per-connection
// ordering intact because no other goroutine ever reads
// this socket.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.remove(c.Token)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			c.hub.events <- Event{Kind: EventClose, Token: c.Token, Err: err}
			return
		}

		payload := make([]byte, len(message))
		copy(payload, message)
		c.hub.events <- Event{Kind: EventRequest, Token: c.Token, Payload: payload}
	}
}

// WritePump is the connection's sole writer: it drains send in FIFO order
// and also owns the ping keepalive, so the socket is never written to
// concurrently from two goroutines.
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
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
