package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBackoff(t *testing.T) {
	tests := []struct {
		tries int
		want  time.Duration
	}{
		{0, 0},
		{1, 100 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{5, 2500 * time.Millisecond},
		{9, 8100 * time.Millisecond},
		{10, 10 * time.Second},
		{1000, 10 * time.Second},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, DefaultBackoff(test.tries), "tries %v", test.tries)
	}
}

func TestCallRoundTrip(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true})
	defer c.Close()

	type config struct {
		Prefix string `json:"STEEM_ADDRESS_PREFIX"`
	}
	done := make(chan error, 1)
	var cfg config
	go func() {
		done <- c.Call(context.Background(), "condenser_api", "get_config", nil, &cfg)
	}()

	conn := dialer.next(t)
	data := <-conn.writes
	assert.JSONEq(t, `{"id":1,"method":"call","params":["condenser_api","get_config",[]]}`, string(data))
	conn.push(t, `{"id":1,"result":{"STEEM_ADDRESS_PREFIX":"STM"}}`)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitTimeout):
		t.Fatal("call timeout")
	}
	assert.Equal(t, "STM", cfg.Prefix)
	assert.True(t, c.IsConnected())
	assert.Equal(t, Open, c.State())
}

func TestPendingFlushOrder(t *testing.T) {
	c, dialer := newTestClient(Options{})
	defer c.Close()
	ctx := context.Background()

	var results []<-chan callResult
	for i := 0; i < 5; i++ {
		req, err := c.send(ctx, "condenser_api", "get_block", []interface{}{i})
		require.NoError(t, err)
		results = append(results, waitAsync(c, req))
	}
	assert.Equal(t, Disconnected, c.State())
	assert.Equal(t, int32(0), atomic.LoadInt32(&dialer.dials), "buffered calls must not dial without AutoConnect")

	connected := make(chan error, 1)
	go func() { connected <- c.Connect(ctx) }()
	conn := dialer.next(t)
	require.NoError(t, <-connected)

	for want := uint64(1); want <= 5; want++ {
		assert.Equal(t, want, conn.next(t).ID)
	}
	for id := 1; id <= 3; id++ {
		conn.push(t, fmt.Sprintf(`{"id":%d,"result":%d}`, id, id*10))
	}
	for i := 0; i < 3; i++ {
		res := receive(t, results[i])
		require.NoError(t, res.err)
		assert.Equal(t, fmt.Sprint((i+1)*10), string(res.raw))
	}

	// connection drops with 4 and 5 unanswered, both are written again in order
	_ = conn.Close()
	conn = dialer.next(t)
	assert.Equal(t, uint64(4), conn.next(t).ID)
	assert.Equal(t, uint64(5), conn.next(t).ID)
	conn.push(t, `{"id":5,"result":"five"}`)
	conn.push(t, `{"id":4,"result":"four"}`)
	assert.Equal(t, `"four"`, string(receive(t, results[3]).raw))
	assert.Equal(t, `"five"`, string(receive(t, results[4]).raw))
}

func TestReconnectAfterDialFailures(t *testing.T) {
	dialer := newFakeDialer()
	dialer.failDials = 2
	var tries []int
	backoff := func(n int) time.Duration {
		tries = append(tries, n)
		return time.Millisecond
	}
	c := New("ws://fake", Options{Dialer: dialer, Backoff: backoff})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, c.Connect(ctx))
	assert.Equal(t, int32(3), atomic.LoadInt32(&dialer.dials))
	assert.Equal(t, []int{0, 1}, tries)

	for i := 0; i < 2; i++ {
		select {
		case err := <-c.Errors():
			assert.True(t, errors.Is(err, errFakeDial))
		case <-time.After(waitTimeout):
			t.Fatal("wait dial error event timeout")
		}
	}

	// retry counter resets once open
	conn := dialer.next(t)
	_ = conn.Close()
	dialer.next(t)
	assert.Equal(t, []int{0, 1, 0}, tries)
}

func TestTimeoutAndLateResponse(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true, Timeout: 200 * time.Millisecond})
	defer c.Close()
	ctx := context.Background()

	err := c.Call(ctx, "condenser_api", "get_block", []interface{}{1}, nil)
	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, uint64(1), timeoutErr.ID)
	assert.Equal(t, "condenser_api.get_block", timeoutErr.Method)

	conn := dialer.next(t)
	assert.Equal(t, uint64(1), conn.next(t).ID)
	conn.push(t, `{"id":1,"result":{"late":true}}`)

	req, err := c.send(ctx, "condenser_api", "get_block", []interface{}{2})
	require.NoError(t, err)
	result := waitAsync(c, req)
	assert.Equal(t, uint64(2), conn.next(t).ID)
	conn.push(t, `{"id":2,"result":2}`)
	res := receive(t, result)
	require.NoError(t, res.err)
	assert.Equal(t, "2", string(res.raw))

	select {
	case err := <-c.Errors():
		t.Fatalf("unexpected connection error %v", err)
	default:
	}
}

func TestRPCError(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true})
	defer c.Close()

	req, err := c.send(context.Background(), "condenser_api", "broadcast_transaction", nil)
	require.NoError(t, err)
	result := waitAsync(c, req)
	conn := dialer.next(t)
	conn.next(t)
	conn.push(t, `{"id":1,"error":{"code":-32000,"message":"Assert Exception:false: missing authority",`+
		`"data":{"code":10,"name":"assert_exception","message":"Assert Exception",`+
		`"stack":[{"context":{"level":"error"},"format":"${what}: missing ${auth} of ${account}",`+
		`"data":{"what":"Missing Authority","account":"foo","level":3}}]}}}`)

	res := receive(t, result)
	var rpcErr *RPCError
	require.True(t, errors.As(res.err, &rpcErr))
	assert.Equal(t, -32000, rpcErr.Code)
	assert.Equal(t, "assert_exception", rpcErr.Name)
	assert.Equal(t, "Missing Authority: missing ${auth} of foo level=3", rpcErr.Message)
	assert.Contains(t, string(rpcErr.Info), `"stack"`)
	assert.Equal(t, "assert_exception: Missing Authority: missing ${auth} of foo level=3", rpcErr.Error())
}

func TestRPCErrorWithoutData(t *testing.T) {
	rpcErr := newRPCError(&jsonError{Code: -32601, Message: "method not found"})
	assert.Equal(t, "RPCError", rpcErr.Name)
	assert.Equal(t, "method not found", rpcErr.Message)
}

func TestMessageError(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true})
	defer c.Close()

	req, err := c.send(context.Background(), "condenser_api", "get_config", nil)
	require.NoError(t, err)
	result := waitAsync(c, req)
	conn := dialer.next(t)
	conn.next(t)

	conn.push(t, `{not json`)
	conn.push(t, `{"result":1}`)
	for _, want := range []string{`{not json`, `{"result":1}`} {
		select {
		case err := <-c.Errors():
			var msgErr *MessageError
			require.True(t, errors.As(err, &msgErr))
			assert.Equal(t, want, string(msgErr.Data))
		case <-time.After(waitTimeout):
			t.Fatal("wait message error timeout")
		}
	}

	conn.push(t, `{"id":1,"result":"ok"}`)
	res := receive(t, result)
	require.NoError(t, res.err)
	assert.Equal(t, `"ok"`, string(res.raw))
}

func TestWriteFailureOnlyFailsThatRequest(t *testing.T) {
	errWrite := errors.New("write failed")
	dialer := newFakeDialer()
	dialer.failWrite = func(data []byte) error {
		if strings.Contains(string(data), `"id":2,`) {
			return errWrite
		}
		return nil
	}
	c := New("ws://fake", Options{Dialer: dialer, Backoff: noBackoff})
	defer c.Close()
	ctx := context.Background()

	var results []<-chan callResult
	for i := 0; i < 3; i++ {
		req, err := c.send(ctx, "condenser_api", "get_block", []interface{}{i})
		require.NoError(t, err)
		results = append(results, waitAsync(c, req))
	}
	go func() { _ = c.Connect(ctx) }()
	conn := dialer.next(t)
	assert.Equal(t, uint64(1), conn.next(t).ID)
	assert.Equal(t, uint64(3), conn.next(t).ID)

	res := receive(t, results[1])
	assert.True(t, errors.Is(res.err, errWrite))

	conn.push(t, `{"id":1,"result":1}`)
	conn.push(t, `{"id":3,"result":3}`)
	assert.NoError(t, receive(t, results[0]).err)
	assert.NoError(t, receive(t, results[2]).err)
}

func TestNotify(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true})
	defer c.Close()

	type confirmation struct {
		ID       string `json:"id"`
		BlockNum uint32 `json:"block_num"`
	}
	var conf confirmation
	done := make(chan error, 1)
	go func() {
		done <- c.Notify(context.Background(), "network_broadcast_api", "broadcast_transaction_with_callback",
			[]interface{}{map[string]int{"ref_block_num": 1}}, &conf)
	}()

	conn := dialer.next(t)
	req := conn.next(t)
	require.Len(t, req.Params, 3)
	var args []json.RawMessage
	require.NoError(t, json.Unmarshal(req.Params[2], &args))
	require.Len(t, args, 2)
	var cbID uint64
	require.NoError(t, json.Unmarshal(args[0], &cbID))
	assert.Less(t, cbID, uint64(maxCallbackID))
	assert.JSONEq(t, `{"ref_block_num":1}`, string(args[1]))

	conn.push(t, fmt.Sprintf(`{"id":%d,"result":null}`, req.ID))
	conn.push(t, fmt.Sprintf(`{"method":"notice","params":[%d,[{"id":"abc","block_num":5}]]}`, cbID))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitTimeout):
		t.Fatal("notify timeout")
	}
	assert.Equal(t, confirmation{ID: "abc", BlockNum: 5}, conf)
}

func TestNotifyTimeout(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true, Timeout: 100 * time.Millisecond})
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		done <- c.Notify(context.Background(), "network_broadcast_api", "broadcast_transaction_with_callback", nil, nil)
	}()
	conn := dialer.next(t)
	req := conn.next(t)
	var args []uint64
	require.NoError(t, json.Unmarshal(req.Params[2], &args))
	require.Len(t, args, 1)
	conn.push(t, fmt.Sprintf(`{"id":%d,"result":null}`, req.ID))

	var err error
	select {
	case err = <-done:
	case <-time.After(waitTimeout):
		t.Fatal("notify not bounded by client timeout")
	}
	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, args[0], timeoutErr.ID)
	assert.Equal(t, "network_broadcast_api.broadcast_transaction_with_callback", timeoutErr.Method)

	// late notice of the dropped callback is ignored
	conn.push(t, fmt.Sprintf(`{"method":"notice","params":[%d,[{"id":"abc"}]]}`, args[0]))
	select {
	case err := <-c.Errors():
		t.Fatalf("unexpected connection error %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyResultForm(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true})
	defer c.Close()

	var conf map[string]interface{}
	done := make(chan error, 1)
	go func() {
		done <- c.Notify(context.Background(), "network_broadcast_api", "broadcast_transaction_with_callback", nil, &conf)
	}()
	conn := dialer.next(t)
	req := conn.next(t)
	var args []uint64
	require.NoError(t, json.Unmarshal(req.Params[2], &args))
	conn.push(t, fmt.Sprintf(`{"id":%d,"result":null}`, req.ID))
	conn.push(t, fmt.Sprintf(`{"id":%d,"result":[{"expired":true}]}`, args[0]))

	require.NoError(t, <-done)
	assert.Equal(t, true, conf["expired"])
}

func TestCallbacksRejectedOnClose(t *testing.T) {
	c, dialer := newTestClient(Options{AutoConnect: true})
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		done <- c.Notify(context.Background(), "network_broadcast_api", "broadcast_transaction_with_callback", nil, nil)
	}()
	conn := dialer.next(t)
	req := conn.next(t)
	conn.push(t, fmt.Sprintf(`{"id":%d,"result":null}`, req.ID))
	_ = conn.Close()

	select {
	case err := <-done:
		assert.Equal(t, ErrConnectionClosed, err)
	case <-time.After(waitTimeout):
		t.Fatal("notify not rejected")
	}
	// reconnects since still active
	dialer.next(t)
}

func TestDisconnect(t *testing.T) {
	c, dialer := newTestClient(Options{})
	defer c.Close()
	ctx := context.Background()

	go func() { _ = c.Connect(ctx) }()
	conn := dialer.next(t)
	require.Eventually(t, c.IsConnected, waitTimeout, time.Millisecond)

	require.NoError(t, c.Disconnect(ctx))
	assert.Equal(t, Disconnected, c.State())
	select {
	case <-conn.closed:
	default:
		t.Fatal("connection not closed")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&dialer.dials), "no reconnect after disconnect")
}

func TestCloseFailsPending(t *testing.T) {
	c, _ := newTestClient(Options{})
	ctx := context.Background()

	req, err := c.send(ctx, "condenser_api", "get_config", nil)
	require.NoError(t, err)
	result := waitAsync(c, req)
	c.Close()

	assert.Equal(t, ErrClientClosed, receive(t, result).err)
	assert.Equal(t, ErrClientClosed, c.Call(ctx, "condenser_api", "get_config", nil, nil))
	assert.Equal(t, ErrClientClosed, c.Connect(ctx))
	_, ok := <-c.Errors()
	assert.False(t, ok)
	c.Close()
}

func TestCallContextCancel(t *testing.T) {
	c, _ := newTestClient(Options{})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Call(ctx, "condenser_api", "get_config", nil, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFormatAssertion(t *testing.T) {
	data := map[string]json.RawMessage{
		"a": json.RawMessage(`"x"`),
		"b": json.RawMessage(`12`),
		"z": json.RawMessage(`{"k":1}`),
	}
	assert.Equal(t, `x and 12 ${c} z={"k":1}`, formatAssertion("${a} and ${b} ${c}", data))
	assert.Equal(t, "plain", formatAssertion("plain", nil))
}

// fake node echoes the called method name back as result
func newTestNode(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer ws.Close()
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var req writtenRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return
			}
			resp := fmt.Sprintf(`{"id":%d,"result":%s}`, req.ID, req.Params[1])
			if err := ws.WriteMessage(websocket.TextMessage, []byte(resp)); err != nil {
				return
			}
		}
	}))
}

func TestWebsocketNode(t *testing.T) {
	node := newTestNode(t)
	defer node.Close()

	address := "ws" + strings.TrimPrefix(node.URL, "http")
	c := New(address, DefaultOptions())
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	require.NoError(t, c.Connect(ctx))
	assert.Equal(t, address, c.Address())

	var method string
	require.NoError(t, c.Call(ctx, "condenser_api", "get_dynamic_global_properties", nil, &method))
	assert.Equal(t, "get_dynamic_global_properties", method)

	require.NoError(t, c.Disconnect(ctx))
	assert.False(t, c.IsConnected())

	require.NoError(t, c.Call(ctx, "database_api", "get_config", []interface{}{}, &method))
	assert.Equal(t, "get_config", method)
	assert.True(t, c.IsConnected())
}
