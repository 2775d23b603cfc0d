package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn   *websocket.Conn
	Send   chan *Event
	UserID string
}

func NewClient(conn *websocket.Conn, userID string) *Client {
	return &Client{
		conn:   conn,
		Send:   make(chan *Event, 64), // buffered to tolerate slow clients
		UserID: userID,
	}
}

// ReadLoop drains inbound frames; the events socket is push-only, reads
// exist to notice the close handshake.
func (c *Client) ReadLoop(hub *Hub) {
	defer func() {
		hub.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (user %s): %v", c.UserID, err)
			}
			return
		}
	}
}

func (c *Client) WriteLoop() {
	defer func() {
		_ = c.conn.Close()
	}()

	for ev := range c.Send {
		if err := c.conn.WriteJSON(ev); err != nil {
			log.Printf("ws write error (user %s): %v", c.UserID, err)
			return
		}
	}
}
