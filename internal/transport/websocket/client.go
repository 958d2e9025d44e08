package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// Client is one renderer connection. conn.WriteJSON is not safe for
// concurrent use, so every write goes through writeMu.
type Client struct {
	ID      string
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  bool
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{ID: id, conn: conn}
}

// SendMessage writes a JSON message, dropping it once the client is closed.
func (c *Client) SendMessage(message interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return nil
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// Renderer adapts the client to the controller's event interface.
func (c *Client) Renderer() domain.Renderer {
	return domain.MessageRenderer{Send: func(msg domain.ServerMessage) {
		if err := c.SendMessage(msg); err != nil {
			log.Printf("[WS] Write to %s failed: %v", c.ID, err)
		}
	}}
}

func (c *Client) SendError(message string) {
	if err := c.SendMessage(domain.ErrorMessage{Type: domain.MsgError, Message: message}); err != nil {
		log.Printf("[WS] Error write to %s failed: %v", c.ID, err)
	}
}

func (c *Client) Close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.conn.Close()
}
