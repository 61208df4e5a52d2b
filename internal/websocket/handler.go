package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers conn with the hub and blocks until the peer goes away.
// greeting, when non-nil, is the first frame the peer receives.
func ServeWs(hub *Hub, conn *websocket.Conn, userID string, greeting []byte) {
	client := NewClient(hub, conn, userID)
	if greeting != nil {
		client.Enqueue(greeting)
	}
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
