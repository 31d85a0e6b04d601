package params

import (
	"errors"
	"fmt"
	"strings"
)

// CheckConfig check config and fill defaults
func (c *ClientConfig) CheckConfig() (err error) {
	if c.Identifier == "" {
		return errors.New("must config non empty 'Identifier'")
	}
	if c.Chain == nil {
		return errors.New("must config 'Chain'")
	}
	if err = c.Chain.CheckConfig(); err != nil {
		return err
	}
	if c.RPC == nil {
		return errors.New("must config 'RPC'")
	}
	if err = c.RPC.CheckConfig(); err != nil {
		return err
	}
	if c.Broadcast == nil {
		c.Broadcast = &BroadcastConfig{}
	}
	if c.Broadcast.ExpireSeconds == 0 {
		c.Broadcast.ExpireSeconds = defaultExpireSeconds
	}
	if c.Stream == nil {
		c.Stream = &StreamConfig{}
	}
	return c.Stream.CheckConfig()
}

// CheckConfig check rpc config
func (c *RPCConfig) CheckConfig() error {
	if c.Address == "" {
		return errors.New("must config 'RPC.Address'")
	}
	if !strings.HasPrefix(c.Address, "ws://") && !strings.HasPrefix(c.Address, "wss://") {
		return fmt.Errorf("wrong 'RPC.Address' %v, want websocket url", c.Address)
	}
	return nil
}

// CheckConfig check stream config
func (c *StreamConfig) CheckConfig() error {
	switch c.Mode {
	case "":
		c.Mode = StreamModeIrreversible
	case StreamModeIrreversible, StreamModeLatest:
	default:
		return fmt.Errorf("wrong 'Stream.Mode' %v", c.Mode)
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	return nil
}
