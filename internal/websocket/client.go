package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// The channel is push-only; anything larger than a close frame is noise.
	maxInboundSize = 512
	sendBuffer     = 64
)

// Client is one browser tab subscribed to its owner's session events.
type Client struct {
	ID          string
	UserID      string
	ConnectedAt time.Time

	Hub  *Hub
	Conn *websocket.Conn

	// Send is closed by the hub on unregister.
	Send chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		ID:          uuid.NewString(),
		UserID:      userID,
		ConnectedAt: time.Now(),
		Hub:         hub,
		Conn:        conn,
		Send:        make(chan []byte, sendBuffer),
	}
}

// Enqueue queues data ahead of hub traffic. It reports false when the buffer is full.
func (c *Client) Enqueue(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) details(extra map[string]interface{}) map[string]interface{} {
	d := map[string]interface{}{
		"client_id": c.ID,
		"user_id":   c.UserID,
	}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

// readPump only drains control frames; inbound payloads are discarded.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
		c.Hub.logger.Info("Client", "Connection closed", c.details(map[string]interface{}{
			"connected_for": time.Since(c.ConnectedAt).Round(time.Second).String(),
		}))
	}()

	c.Conn.SetReadLimit(maxInboundSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", c.details(map[string]interface{}{"error": err.Error()}))
			}
			return
		}
	}
}

// writePump writes one text frame per event so the browser can JSON.parse
// each frame, and pings to keep proxies from idling the connection out.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
