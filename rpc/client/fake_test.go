package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	errFakeClosed = errors.New("fake connection closed")
	errFakeDial   = errors.New("fake dial failed")
)

const waitTimeout = 5 * time.Second

type fakeConn struct {
	in        chan []byte
	writes    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	failWrite func(data []byte) error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte),
		writes: make(chan []byte, 100),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case msg := <-c.in:
		return msg, nil
	case <-c.closed:
		return nil, errFakeClosed
	}
}

func (c *fakeConn) WriteMessage(data []byte) error {
	if c.failWrite != nil {
		if err := c.failWrite(data); err != nil {
			return err
		}
	}
	select {
	case c.writes <- data:
		return nil
	case <-c.closed:
		return errFakeClosed
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// push delivers a message from the node
func (c *fakeConn) push(t *testing.T, msg string) {
	t.Helper()
	select {
	case c.in <- []byte(msg):
	case <-time.After(waitTimeout):
		t.Fatalf("push message timeout: %v", msg)
	}
}

type writtenRequest struct {
	ID     uint64            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// next returns the next request written by the client
func (c *fakeConn) next(t *testing.T) *writtenRequest {
	t.Helper()
	select {
	case data := <-c.writes:
		req := new(writtenRequest)
		require.NoError(t, json.Unmarshal(data, req))
		return req
	case <-time.After(waitTimeout):
		t.Fatal("wait request timeout")
		return nil
	}
}

type fakeDialer struct {
	conns     chan *fakeConn
	failDials int32
	dials     int32
	failWrite func(data []byte) error
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{conns: make(chan *fakeConn, 100)}
}

func (d *fakeDialer) Dial(ctx context.Context, address string) (Conn, error) {
	atomic.AddInt32(&d.dials, 1)
	if atomic.AddInt32(&d.failDials, -1) >= 0 {
		return nil, errFakeDial
	}
	conn := newFakeConn()
	conn.failWrite = d.failWrite
	d.conns <- conn
	return conn, nil
}

func (d *fakeDialer) next(t *testing.T) *fakeConn {
	t.Helper()
	select {
	case conn := <-d.conns:
		return conn
	case <-time.After(waitTimeout):
		t.Fatal("wait dial timeout")
		return nil
	}
}

func noBackoff(int) time.Duration { return 0 }

func newTestClient(opts Options) (*Client, *fakeDialer) {
	dialer := newFakeDialer()
	opts.Dialer = dialer
	if opts.Backoff == nil {
		opts.Backoff = noBackoff
	}
	return New("ws://fake", opts), dialer
}

type callResult struct {
	raw json.RawMessage
	err error
}

// waitAsync waits req in background
func waitAsync(c *Client, req *request) <-chan callResult {
	ch := make(chan callResult, 1)
	go func() {
		raw, err := c.wait(context.Background(), req)
		ch <- callResult{raw, err}
	}()
	return ch
}

func receive(t *testing.T, ch <-chan callResult) callResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(waitTimeout):
		t.Fatal("wait call result timeout")
		return callResult{}
	}
}
