// Package client talks to a running dungeond over its WebSocket.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"github.com/lawnchairsociety/dungeongen/internal/export"
	"github.com/lawnchairsociety/dungeongen/internal/server"
)

// ErrRemote wraps an error reported by the service.
var ErrRemote = errors.New("client: service error")

// Client is one socket to dungeond. Requests on a client are serialized.
type Client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

// Dial connects to a ws:// or wss:// URL ending in /ws.
func Dial(ctx context.Context, url string, header http.Header) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("client: dial %s: %s: %w", url, resp.Status, err)
		}
		return nil, fmt.Errorf("client: dial %s: %w", url, err)
	}
	return &Client{conn: conn, timeout: 30 * time.Second}, nil
}

// SetTimeout bounds each request round trip. Zero disables the bound.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

// Generate requests a dungeon. A nil cfg uses the service default.
// The returned id is non-zero when the service archived the dungeon.
func (c *Client) Generate(seed int64, cfg *dungeon.Configuration) (*export.Document, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	_ = c.conn.SetWriteDeadline(deadline)
	_ = c.conn.SetReadDeadline(deadline)

	if err := c.conn.WriteJSON(server.Request{Seed: seed, Config: cfg}); err != nil {
		return nil, 0, fmt.Errorf("client: send: %w", err)
	}
	var resp server.Response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, 0, fmt.Errorf("client: receive: %w", err)
	}
	if resp.Error != "" {
		return nil, 0, fmt.Errorf("%w: %s", ErrRemote, resp.Error)
	}
	if resp.Dungeon == nil {
		return nil, 0, fmt.Errorf("%w: empty response", ErrRemote)
	}
	return resp.Dungeon, resp.ID, nil
}

// Close sends a normal close frame and closes the socket.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
