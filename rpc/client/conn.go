package client

import (
	"context"
	"net/http"
	"sync"
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

	// Time allowed to connect to server.
	dialTimeout = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 32 * 1024 * 1024
)

// Conn a message oriented full duplex socket.
// ReadMessage is called from one goroutine, WriteMessage from another.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Dialer opens connections to a node address
type Dialer interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// WebsocketDialer dials websocket nodes with gorilla websocket
type WebsocketDialer struct {
	Header http.Header
}

// Dial implements Dialer
func (d *WebsocketDialer) Dial(ctx context.Context, address string) (Conn, error) {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: dialTimeout,
	}
	ws, resp, err := dialer.DialContext(ctx, address, d.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error { return ws.SetReadDeadline(time.Now().Add(pongWait)) })

	conn := &websocketConn{
		ws:   ws,
		quit: make(chan struct{}),
	}
	go conn.pingLoop()
	return conn, nil
}

type websocketConn struct {
	ws        *websocket.Conn
	writeLock sync.Mutex
	quit      chan struct{}
	closeOnce sync.Once
}

func (c *websocketConn) ReadMessage() ([]byte, error) {
	for {
		msgType, message, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		if msgType == websocket.TextMessage || msgType == websocket.BinaryMessage {
			return message, nil
		}
	}
}

func (c *websocketConn) WriteMessage(data []byte) error {
	return c.write(websocket.TextMessage, data)
}

func (c *websocketConn) write(msgType int, data []byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(msgType, data)
}

func (c *websocketConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.quit)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.write(websocket.CloseMessage, msg)
		err = c.ws.Close()
	})
	return err
}

// pingLoop sends pings at pingPeriod until the connection is closed
func (c *websocketConn) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.quit:
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
