// Package client implements the json-rpc transport over a persistent websocket.
//
// Calls issued while the connection is down are kept pending and written,
// in ascending id order, once the connection is open again. A request that
// was already written before a disconnect is written again after reconnect,
// so delivery is at least once: the node may execute it twice.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anyswap/steem-client/log"
)

const (
	// DefaultTimeout default per call timeout
	DefaultTimeout = 60 * time.Second

	errorsChanSize = 16
	maxCallbackID  = 1 << 53
)

// State connection state
type State int32

// connection states
const (
	Disconnected State = iota
	Connecting
	Open
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Backoff returns the delay before reconnect attempt tries
type Backoff func(tries int) time.Duration

// DefaultBackoff min((tries*10)^2, 10000) milliseconds
func DefaultBackoff(tries int) time.Duration {
	if tries >= 10 {
		return 10 * time.Second
	}
	ms := (tries * 10) * (tries * 10)
	return time.Duration(ms) * time.Millisecond
}

// Options transport options
type Options struct {
	Timeout     time.Duration // per call timeout, 0 disables
	Backoff     Backoff
	AutoConnect bool // connect on first call
	Dialer      Dialer
}

// DefaultOptions default options
func DefaultOptions() Options {
	return Options{
		Timeout:     DefaultTimeout,
		Backoff:     DefaultBackoff,
		AutoConnect: true,
		Dialer:      &WebsocketDialer{},
	}
}

type result struct {
	raw json.RawMessage
	err error
}

// request a pending call or callback, resolved once by the run loop
type request struct {
	id     uint64
	method string
	data   []byte
	timer  *time.Timer
	done   chan result
}

func newRequest(id uint64, method string, data []byte) *request {
	return &request{
		id:     id,
		method: method,
		data:   data,
		done:   make(chan result, 1),
	}
}

func (r *request) resolve(raw json.RawMessage, err error) {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.done <- result{raw: raw, err: err}
}

type drop struct {
	id       uint64
	callback bool
	err      error
}

type command struct {
	connect bool
	reply   chan error
}

type eventKind int

const (
	eventDialed eventKind = iota
	eventClosed
)

type connEvent struct {
	kind  eventKind
	epoch uint64
	conn  Conn
	err   error
}

type inboundMessage struct {
	epoch uint64
	data  []byte
}

// Client json-rpc client of one node
type Client struct {
	address     string
	timeout     time.Duration
	backoff     Backoff
	autoConnect bool
	dialer      Dialer

	nextID uint64 // atomic
	state  int32  // atomic

	calls        chan *request
	callbackRegs chan *request
	drops        chan drop
	commands     chan command
	events       chan connEvent
	inbound      chan inboundMessage
	retry        chan uint64
	errs         chan error

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}

	// owned by the run loop
	pending        map[uint64]*request
	callbacks      map[uint64]*request
	conn           Conn
	epoch          uint64
	active         bool
	tries          int
	reconnect      *time.Timer
	connectWaiters []chan error
}

// New creates a client of node address, no connection is made until
// Connect or, with AutoConnect, the first call
func New(address string, opts Options) *Client {
	if opts.Backoff == nil {
		opts.Backoff = DefaultBackoff
	}
	if opts.Dialer == nil {
		opts.Dialer = &WebsocketDialer{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		address:      address,
		timeout:      opts.Timeout,
		backoff:      opts.Backoff,
		autoConnect:  opts.AutoConnect,
		dialer:       opts.Dialer,
		calls:        make(chan *request),
		callbackRegs: make(chan *request),
		drops:        make(chan drop),
		commands:     make(chan command),
		events:       make(chan connEvent),
		inbound:      make(chan inboundMessage),
		retry:        make(chan uint64),
		errs:         make(chan error, errorsChanSize),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
		pending:      make(map[uint64]*request),
		callbacks:    make(map[uint64]*request),
	}
	go c.run()
	return c
}

// Address returns node address
func (c *Client) Address() string {
	return c.address
}

// State returns connection state
func (c *Client) State() State {
	return State(atomic.LoadInt32(&c.state))
}

// IsConnected connection is open
func (c *Client) IsConnected() bool {
	return c.State() == Open
}

// Errors returns connection level errors, such as socket errors and
// invalid messages. Events are dropped when nobody reads them.
// The channel is closed by Close.
func (c *Client) Errors() <-chan error {
	return c.errs
}

// Connect enables reconnecting and waits until the connection is open
func (c *Client) Connect(ctx context.Context) error {
	return c.command(ctx, true)
}

// Disconnect closes the connection and disables reconnecting.
// Pending calls stay pending until they time out or the client connects again.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.command(ctx, false)
}

// Close disconnects and fails every pending call with ErrClientClosed
func (c *Client) Close() {
	c.closeOnce.Do(c.cancel)
	<-c.done
}

func (c *Client) command(ctx context.Context, connect bool) error {
	cmd := command{connect: connect, reply: make(chan error, 1)}
	select {
	case c.commands <- cmd:
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call calls api.method with params and decodes the result into result
func (c *Client) Call(ctx context.Context, api, method string, params, result interface{}) error {
	raw, err := c.call(ctx, api, method, params)
	if err != nil {
		return err
	}
	return decodeResult(raw, result, api, method)
}

// Notify calls api.method with a fresh callback id prepended to params
// and waits for the node to push the notification of that id.
// The wait is bounded by the client timeout when one is set.
// It is used by the broadcast with callback api.
func (c *Client) Notify(ctx context.Context, api, method string, params []interface{}, result interface{}) error {
	cb := newRequest(nextCallbackID(), api+"."+method, nil)
	select {
	case c.callbackRegs <- cb:
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	args := append([]interface{}{cb.id}, params...)
	if _, err := c.call(ctx, api, method, args); err != nil {
		c.drop(cb.id, true, err)
		return err
	}
	var expired <-chan time.Time
	if c.timeout > 0 {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case res := <-cb.done:
		if res.err != nil {
			return res.err
		}
		return decodeResult(res.raw, result, api, method)
	case <-expired:
		err := &TimeoutError{ID: cb.id, Method: cb.method, Timeout: c.timeout}
		c.drop(cb.id, true, err)
		return err
	case <-ctx.Done():
		c.drop(cb.id, true, ctx.Err())
		return ctx.Err()
	}
}

func (c *Client) call(ctx context.Context, api, method string, params interface{}) (json.RawMessage, error) {
	req, err := c.send(ctx, api, method, params)
	if err != nil {
		return nil, err
	}
	return c.wait(ctx, req)
}

// send hands a new request to the run loop
func (c *Client) send(ctx context.Context, api, method string, params interface{}) (*request, error) {
	id := atomic.AddUint64(&c.nextID, 1)
	data, err := encodeCall(id, api, method, params)
	if err != nil {
		return nil, fmt.Errorf("encode %v.%v request: %w", api, method, err)
	}
	req := newRequest(id, api+"."+method, data)
	select {
	case c.calls <- req:
		return req, nil
	case <-c.done:
		return nil, ErrClientClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) wait(ctx context.Context, req *request) (json.RawMessage, error) {
	select {
	case res := <-req.done:
		return res.raw, res.err
	case <-ctx.Done():
		c.drop(req.id, false, ctx.Err())
		return nil, ctx.Err()
	}
}

func (c *Client) drop(id uint64, callback bool, err error) {
	select {
	case c.drops <- drop{id: id, callback: callback, err: err}:
	case <-c.done:
	}
}

func decodeResult(raw json.RawMessage, result interface{}, api, method string) error {
	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode %v.%v result: %w", api, method, err)
	}
	return nil
}

var (
	callbackRand     = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec // not a secret
	callbackRandLock sync.Mutex
)

func nextCallbackID() uint64 {
	callbackRandLock.Lock()
	defer callbackRandLock.Unlock()
	return uint64(callbackRand.Int63n(maxCallbackID))
}

func (c *Client) setState(s State) {
	atomic.StoreInt32(&c.state, int32(s))
}

// run owns pending, callbacks and the connection until Close
func (c *Client) run() {
	defer c.shutdown()
	for {
		select {
		case <-c.ctx.Done():
			return
		case req := <-c.calls:
			c.handleCall(req)
		case cb := <-c.callbackRegs:
			c.callbacks[cb.id] = cb
		case d := <-c.drops:
			c.handleDrop(d)
		case cmd := <-c.commands:
			c.handleCommand(cmd)
		case ev := <-c.events:
			c.handleEvent(ev)
		case msg := <-c.inbound:
			if msg.epoch == c.epoch {
				c.handleMessage(msg.data)
			}
		case epoch := <-c.retry:
			if epoch == c.epoch && c.active && c.State() == Disconnected {
				c.dial()
			}
		}
	}
}

func (c *Client) handleCall(req *request) {
	c.pending[req.id] = req
	if c.timeout > 0 {
		id, method, timeout := req.id, req.method, c.timeout
		req.timer = time.AfterFunc(timeout, func() {
			c.drop(id, false, &TimeoutError{ID: id, Method: method, Timeout: timeout})
		})
	}
	switch c.State() {
	case Open:
		c.write(req)
	case Disconnected:
		if !c.active && c.autoConnect {
			c.active = true
			c.dial()
		}
	}
}

func (c *Client) handleDrop(d drop) {
	requests := c.pending
	if d.callback {
		requests = c.callbacks
	}
	req, exist := requests[d.id]
	if !exist {
		return
	}
	delete(requests, d.id)
	log.Debug("drop request", "id", d.id, "method", req.method, "err", d.err)
	req.resolve(nil, d.err)
}

func (c *Client) handleCommand(cmd command) {
	if cmd.connect {
		c.active = true
		switch c.State() {
		case Open:
			cmd.reply <- nil
		case Connecting:
			c.connectWaiters = append(c.connectWaiters, cmd.reply)
		case Disconnected:
			c.connectWaiters = append(c.connectWaiters, cmd.reply)
			c.stopReconnect()
			c.dial()
		}
		return
	}

	c.active = false
	c.stopReconnect()
	c.epoch++ // events of the current connection or dial are stale now
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		log.Info("disconnected from node", "address", c.address)
	}
	c.setState(Disconnected)
	c.rejectCallbacks(ErrConnectionClosed)
	c.replyConnectWaiters(ErrConnectionClosed)
	cmd.reply <- nil
}

func (c *Client) dial() {
	c.epoch++
	epoch := c.epoch
	c.setState(Connecting)
	log.Info("connecting to node", "address", c.address, "tries", c.tries)
	go func() {
		conn, err := c.dialer.Dial(c.ctx, c.address)
		c.sendEvent(connEvent{kind: eventDialed, epoch: epoch, conn: conn, err: err})
	}()
}

func (c *Client) sendEvent(ev connEvent) {
	select {
	case c.events <- ev:
	case <-c.done:
		if ev.conn != nil {
			_ = ev.conn.Close()
		}
	}
}

func (c *Client) handleEvent(ev connEvent) {
	if ev.epoch != c.epoch {
		if ev.kind == eventDialed && ev.conn != nil {
			_ = ev.conn.Close()
		}
		return
	}
	switch ev.kind {
	case eventDialed:
		if ev.err != nil {
			log.Warn("connect to node failed", "address", c.address, "err", ev.err)
			c.emit(ev.err)
			c.onClose()
			return
		}
		c.onOpen(ev.conn)
	case eventClosed:
		log.Info("connection closed", "address", c.address, "err", ev.err)
		_ = c.conn.Close()
		c.conn = nil
		if ev.err != nil {
			c.emit(ev.err)
		}
		c.onClose()
	}
}

func (c *Client) onOpen(conn Conn) {
	c.conn = conn
	c.tries = 0
	c.setState(Open)
	log.Info("connected to node", "address", c.address, "pending", len(c.pending))
	go c.readLoop(conn, c.epoch)
	c.flushPending()
	c.replyConnectWaiters(nil)
}

func (c *Client) onClose() {
	c.setState(Disconnected)
	c.rejectCallbacks(ErrConnectionClosed)
	if !c.active {
		return
	}
	delay := c.backoff(c.tries)
	c.tries++
	log.Info("reconnect to node later", "address", c.address, "delay", delay, "tries", c.tries)
	epoch := c.epoch
	c.reconnect = time.AfterFunc(delay, func() {
		select {
		case c.retry <- epoch:
		case <-c.done:
		}
	})
}

func (c *Client) stopReconnect() {
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
}

// flushPending writes every pending request in ascending id order
func (c *Client) flushPending() {
	ids := make([]uint64, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if req, exist := c.pending[id]; exist {
			c.write(req)
		}
	}
}

// write failure only fails req
func (c *Client) write(req *request) {
	log.Trace("write request", "id", req.id, "method", req.method)
	if err := c.conn.WriteMessage(req.data); err != nil {
		log.Warn("write request failed", "id", req.id, "method", req.method, "err", err)
		delete(c.pending, req.id)
		req.resolve(nil, fmt.Errorf("write request %v: %w", req.id, err))
	}
}

func (c *Client) readLoop(conn Conn, epoch uint64) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.sendEvent(connEvent{kind: eventClosed, epoch: epoch, err: err})
			return
		}
		select {
		case c.inbound <- inboundMessage{epoch: epoch, data: data}:
		case <-c.done:
			return
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var msg jsonMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.messageError(data, err)
		return
	}
	if msg.Method == noticeMethod {
		id, payload, err := decodeNotice(msg.Params)
		if err != nil {
			c.messageError(data, err)
			return
		}
		c.resolveCallback(id, payload, nil)
		return
	}
	if msg.ID == nil {
		c.messageError(data, errMissingID)
		return
	}
	id := *msg.ID
	var rpcErr error
	if msg.Error != nil {
		rpcErr = newRPCError(msg.Error)
	}
	if req, exist := c.pending[id]; exist {
		delete(c.pending, id)
		req.resolve(msg.Result, rpcErr)
		return
	}
	if _, exist := c.callbacks[id]; exist {
		c.resolveCallback(id, firstResult(msg.Result), rpcErr)
		return
	}
	log.Debug("drop unmatched response", "id", id)
}

func (c *Client) resolveCallback(id uint64, payload json.RawMessage, err error) {
	cb, exist := c.callbacks[id]
	if !exist {
		log.Debug("drop unmatched notification", "id", id)
		return
	}
	delete(c.callbacks, id)
	cb.resolve(payload, err)
}

func (c *Client) rejectCallbacks(err error) {
	for id, cb := range c.callbacks {
		delete(c.callbacks, id)
		cb.resolve(nil, err)
	}
}

func (c *Client) replyConnectWaiters(err error) {
	for _, w := range c.connectWaiters {
		w <- err
	}
	c.connectWaiters = nil
}

func (c *Client) messageError(data []byte, err error) {
	msgErr := &MessageError{Data: append([]byte(nil), data...), Cause: err}
	log.Warn("invalid message from node", "address", c.address, "err", msgErr)
	c.emit(msgErr)
}

func (c *Client) emit(err error) {
	select {
	case c.errs <- err:
	default:
		log.Debug("errors channel is full, drop event", "err", err)
	}
}

func (c *Client) shutdown() {
	c.stopReconnect()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.setState(Disconnected)
	for id, req := range c.pending {
		delete(c.pending, id)
		req.resolve(nil, ErrClientClosed)
	}
	c.rejectCallbacks(ErrClientClosed)
	c.replyConnectWaiters(ErrClientClosed)
	close(c.done)
	close(c.errs)
	log.Info("client closed", "address", c.address)
}
