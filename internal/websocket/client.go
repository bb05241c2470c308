package websocket

import (
	"log"
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

	// Maximum message size allowed from peer. Canvas strokes can carry a
	// fair amount of point data, so this is roomier than a chat line needs.
	maxMessageSize = 16384

	// Outbound queue depth per connection.
	sendBufferSize = 256
)

// Client wraps one websocket connection. userID is empty for connections
// that did not present an identity at handshake time; those are excluded
// from presence tracking but keep full access to canvas rooms.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	userID string

	// set by the hub while holding its lock, read under the same lock
	closed bool

	connectedAt time.Time
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		hub:         hub,
		userID:      userID,
		connectedAt: time.Now(),
	}
}

func (c *Client) UserID() string {
	return c.userID
}

func (c *Client) ConnectedAt() time.Time {
	return c.connectedAt
}

// ReadPump reads frames off the connection and hands them to the handler.
// It owns connection teardown: any read error, clean close or abrupt drop
// alike, unregisters the client and closes the underlying connection.
func (c *Client) ReadPump(handler *MessageHandler) {
	defer func() {
		c.hub.UnregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("failed to set read deadline: %v", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read error (user=%q): %v", c.userID, err)
			}
			return
		}

		handler.HandleMessage(c, raw)
	}
}

// WritePump drains the send channel onto the connection and keeps the
// connection alive with periodic pings. It exits when the hub closes the
// send channel or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("websocket write error (user=%q): %v", c.userID, err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
