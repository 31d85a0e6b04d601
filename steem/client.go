// Package steem provides database, broadcast and blockchain helpers on top of
// the rpc client, the serializer and the signer.
package steem

import (
	"context"
	"time"

	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/log"
	"github.com/anyswap/steem-client/params"
	"github.com/anyswap/steem-client/rpc/client"
	"github.com/anyswap/steem-client/signer"
	"github.com/anyswap/steem-client/types"
)

const (
	defaultExpireTime   = 60 * time.Second
	defaultPollInterval = 3 * time.Second
)

// Transport issues calls to a node, implemented by *client.Client
type Transport interface {
	Call(ctx context.Context, api, method string, params, result interface{}) error
	Notify(ctx context.Context, api, method string, params []interface{}, result interface{}) error
}

var _ Transport = (*client.Client)(nil)

// Options client options
type Options struct {
	ChainID       []byte
	AddressPrefix string
	ExpireTime    time.Duration // expiration offset of built transactions
	PollInterval  time.Duration // block stream sleep when caught up
}

// Client node client facade
type Client struct {
	transport Transport
	opts      Options
}

// New returns a client over transport
func New(transport Transport, opts Options) *Client {
	if opts.ExpireTime <= 0 {
		opts.ExpireTime = defaultExpireTime
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.AddressPrefix == "" {
		opts.AddressPrefix = crypto.DefaultAddressPrefix
	}
	return &Client{
		transport: transport,
		opts:      opts,
	}
}

// NewClient returns a client of checked config, dialing a websocket node
func NewClient(cfg *params.ClientConfig) *Client {
	rpcOpts := client.DefaultOptions()
	rpcOpts.Timeout = time.Duration(cfg.RPC.Timeout) * time.Second
	rpcOpts.AutoConnect = cfg.RPC.AutoConnect
	transport := client.New(cfg.RPC.Address, rpcOpts)

	opts := Options{
		ChainID:       cfg.Chain.GetChainID(),
		AddressPrefix: cfg.Chain.AddressPrefix,
	}
	if cfg.Broadcast != nil {
		opts.ExpireTime = time.Duration(cfg.Broadcast.ExpireSeconds) * time.Second
	}
	if cfg.Stream != nil {
		opts.PollInterval = time.Duration(cfg.Stream.PollInterval) * time.Second
	}
	types.UseTestnetSymbols(cfg.Chain.Network == params.TestnetName)
	log.Info("new steem client", "address", cfg.RPC.Address, "network", cfg.Chain.Network, "prefix", opts.AddressPrefix)
	return New(transport, opts)
}

// Transport returns the underlying transport
func (c *Client) Transport() Transport {
	return c.transport
}

// ChainID returns chain id used in digests
func (c *Client) ChainID() []byte {
	return c.opts.ChainID
}

// AddressPrefix returns public key prefix of the network
func (c *Client) AddressPrefix() string {
	return c.opts.AddressPrefix
}

// SignerOptions returns options used to sign transactions
func (c *Client) SignerOptions() signer.Options {
	return signer.Options{
		ChainID:       c.opts.ChainID,
		AddressPrefix: c.opts.AddressPrefix,
	}
}

// Call calls api method of node
func (c *Client) Call(ctx context.Context, api, method string, params, result interface{}) error {
	return c.transport.Call(ctx, api, method, params, result)
}

// Close closes the transport if it can be closed
func (c *Client) Close() {
	if closer, ok := c.transport.(interface{ Close() }); ok {
		closer.Close()
	}
}
