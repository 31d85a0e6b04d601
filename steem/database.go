package steem

import (
	"context"
	"fmt"

	"github.com/anyswap/steem-client/types"
)

const condenserAPI = "condenser_api"

// GetDynamicGlobalProperties call get_dynamic_global_properties
func (c *Client) GetDynamicGlobalProperties(ctx context.Context) (*types.DynamicGlobalProperties, error) {
	var result types.DynamicGlobalProperties
	err := c.Call(ctx, condenserAPI, "get_dynamic_global_properties", nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBlock call get_block, returns ErrBlockNotFound if node has no such block
func (c *Client) GetBlock(ctx context.Context, num uint32) (*types.SignedBlock, error) {
	var result *types.SignedBlock
	err := c.Call(ctx, condenserAPI, "get_block", []interface{}{num}, &result)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockNotFound, num)
	}
	return result, nil
}

// GetBlockHeader call get_block_header
func (c *Client) GetBlockHeader(ctx context.Context, num uint32) (*types.BlockHeader, error) {
	var result *types.BlockHeader
	err := c.Call(ctx, condenserAPI, "get_block_header", []interface{}{num}, &result)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockNotFound, num)
	}
	return result, nil
}

// GetOpsInBlock call get_ops_in_block
func (c *Client) GetOpsInBlock(ctx context.Context, num uint32, onlyVirtual bool) ([]*types.AppliedOperation, error) {
	var result []*types.AppliedOperation
	err := c.Call(ctx, condenserAPI, "get_ops_in_block", []interface{}{num, onlyVirtual}, &result)
	return result, err
}

// GetConfig call get_config
func (c *Client) GetConfig(ctx context.Context) (*types.ChainConfig, error) {
	var result types.ChainConfig
	err := c.Call(ctx, condenserAPI, "get_config", nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetChainProperties call get_chain_properties
func (c *Client) GetChainProperties(ctx context.Context) (*types.ChainProperties, error) {
	var result types.ChainProperties
	err := c.Call(ctx, condenserAPI, "get_chain_properties", nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAccounts call get_accounts, unknown names are omitted by the node
func (c *Client) GetAccounts(ctx context.Context, names ...string) ([]*types.Account, error) {
	var result []*types.Account
	err := c.Call(ctx, condenserAPI, "get_accounts", []interface{}{append([]string{}, names...)}, &result)
	return result, err
}
