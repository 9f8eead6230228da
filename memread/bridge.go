package memread

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const bridgeCallTimeout = 50 * time.Millisecond

// Client reads the observed process through a local acquisition bridge over
// a websocket. One request is in flight at a time; the render loop issues a
// small constant number of reads per frame, so serializing them keeps the
// protocol trivial (correlated ids guard against stray responses).
type Client struct {
	mu     sync.Mutex
	addr   string
	conn   *websocket.Conn
	nextID uint64
}

type bridgeRequest struct {
	ID   uint64 `json:"id"`
	Op   string `json:"op"`
	Addr uint64 `json:"addr"`
	Size int    `json:"size"`
}

type bridgeResponse struct {
	ID    uint64 `json:"id"`
	Data  []byte `json:"data"`
	Error string `json:"error,omitempty"`
}

// Dial connects to the acquisition bridge, e.g. "ws://127.0.0.1:7718/mem".
func Dial(addr string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("memread: dial bridge %s: %w", addr, err)
	}
	return &Client{addr: addr, conn: conn}, nil
}

func (c *Client) ReadBytes(addr uint64, buf []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, _, err := websocket.DefaultDialer.Dial(c.addr, nil)
		if err != nil {
			return fmt.Errorf("memread: redial bridge %s: %w", c.addr, err)
		}
		c.conn = conn
	}

	c.nextID++
	req := bridgeRequest{ID: c.nextID, Op: "read", Addr: addr, Size: len(buf)}

	deadline := time.Now().Add(bridgeCallTimeout)
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("memread: bridge write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(req); err != nil {
		c.drop()
		return fmt.Errorf("memread: bridge write: %w", err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("memread: bridge read deadline: %w", err)
	}
	var resp bridgeResponse
	if err := c.conn.ReadJSON(&resp); err != nil {
		c.drop()
		return fmt.Errorf("memread: bridge read: %w", err)
	}
	if resp.ID != req.ID {
		c.drop()
		return fmt.Errorf("memread: bridge response id %d for request %d", resp.ID, req.ID)
	}
	if resp.Error != "" {
		return fmt.Errorf("memread: bridge read %#x: %s", addr, resp.Error)
	}
	if len(resp.Data) != len(buf) {
		return ErrShortRead
	}
	copy(buf, resp.Data)
	return nil
}

// drop discards a connection after a protocol fault; the next read redials.
// Callers hold c.mu.
func (c *Client) drop() {
	_ = c.conn.Close()
	c.conn = nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
