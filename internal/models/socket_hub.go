package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

// SocketClient is one websocket connection bound to a user. Writes are
// serialized: gorilla/websocket allows a single concurrent writer.
type SocketClient struct {
	Conn   *websocket.Conn
	UserId string

	mu sync.Mutex
}

func (c *SocketClient) WriteEvent(event SocketEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(event)
}

// SocketHub tracks the open connections per conversation so the server can
// close them all on shutdown.
type SocketHub struct {
	Conversations map[uint][]*SocketClient
	Mu            sync.Mutex
}
