package params

import (
	"fmt"
	"strings"

	"github.com/anyswap/steem-client/common"
)

// network names
const (
	MainnetName = "mainnet"
	TestnetName = "testnet"
)

// ChainConfig network parameters mixed into signatures and key texts
type ChainConfig struct {
	Network       string
	ChainID       string `toml:",omitempty" json:",omitempty"` // hex, overrides network preset
	AddressPrefix string `toml:",omitempty" json:",omitempty"` // overrides network preset
}

type chainPreset struct {
	chainID       string
	addressPrefix string
}

var chainPresets = map[string]chainPreset{
	MainnetName: {
		chainID:       "0000000000000000000000000000000000000000000000000000000000000000",
		addressPrefix: "STM",
	},
	TestnetName: {
		chainID:       "79276aea5d4877d9a25892eaa01b0adf019d3e5cb12a97478df3298ccdd01673",
		addressPrefix: "STX",
	},
}

// MainnetChainID returns the main network chain id
func MainnetChainID() []byte {
	return common.MustParseHexBytes(chainPresets[MainnetName].chainID)
}

// TestnetChainID returns the test network chain id
func TestnetChainID() []byte {
	return common.MustParseHexBytes(chainPresets[TestnetName].chainID)
}

// NewChainConfig returns preset config of network
func NewChainConfig(network string) (*ChainConfig, error) {
	c := &ChainConfig{Network: network}
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckConfig fills presets and checks chain config
func (c *ChainConfig) CheckConfig() error {
	network := strings.ToLower(c.Network)
	preset, ok := chainPresets[network]
	switch {
	case ok:
		c.Network = network
		if c.ChainID == "" {
			c.ChainID = preset.chainID
		}
		if c.AddressPrefix == "" {
			c.AddressPrefix = preset.addressPrefix
		}
	case c.ChainID == "" || c.AddressPrefix == "":
		return fmt.Errorf("unknown network '%v' must config 'ChainID' and 'AddressPrefix'", c.Network)
	}
	chainID, err := common.ParseHexBytes(c.ChainID)
	if err != nil {
		return fmt.Errorf("wrong 'ChainID': %w", err)
	}
	if len(chainID) != 32 {
		return fmt.Errorf("wrong 'ChainID' length %v, want 32 bytes", len(chainID))
	}
	if len(c.AddressPrefix) != 3 {
		return fmt.Errorf("wrong 'AddressPrefix' %q, want 3 characters", c.AddressPrefix)
	}
	return nil
}

// GetChainID returns chain id bytes, must call CheckConfig first
func (c *ChainConfig) GetChainID() []byte {
	return common.MustParseHexBytes(c.ChainID)
}
