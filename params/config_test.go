package params

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
Identifier = "streamer"

[Chain]
Network = "testnet"

[RPC]
Address = "wss://testnet.steemitdev.com"
Timeout = 30
AutoConnect = true

[Stream]
Mode = "latest"
CheckpointDB = "checkpoint"
`

func writeConfig(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestDecodeConfigFile(t *testing.T) {
	config, err := DecodeConfigFile(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "streamer", config.Identifier)
	assert.Equal(t, TestnetName, config.Chain.Network)
	assert.Equal(t, "STX", config.Chain.AddressPrefix)
	assert.Equal(t, TestnetChainID(), config.Chain.GetChainID())
	assert.Equal(t, uint64(30), config.RPC.Timeout)
	assert.True(t, config.RPC.AutoConnect)
	assert.Equal(t, uint64(defaultExpireSeconds), config.Broadcast.ExpireSeconds)
	assert.Equal(t, StreamModeLatest, config.Stream.Mode)
	assert.Equal(t, uint64(defaultPollInterval), config.Stream.PollInterval)
	assert.Equal(t, "checkpoint", config.Stream.CheckpointDB)
}

func TestDecodeConfigFileErrors(t *testing.T) {
	_, err := DecodeConfigFile("/not/exist.toml")
	assert.Error(t, err)

	_, err = DecodeConfigFile(writeConfig(t, "Identifier = "))
	assert.Error(t, err)

	_, err = DecodeConfigFile(writeConfig(t, "[RPC]\nAddress = \"https://api.steemit.com\""))
	assert.EqualError(t, err, "wrong 'RPC.Address' https://api.steemit.com, want websocket url")

	_, err = DecodeConfigFile(writeConfig(t, "[Stream]\nMode = \"head\""))
	assert.EqualError(t, err, "wrong 'Stream.Mode' head")
}

func TestChainConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  ChainConfig
		prefix  string
		wantErr bool
	}{
		{name: "mainnet preset", config: ChainConfig{Network: "Mainnet"}, prefix: "STM"},
		{name: "testnet preset", config: ChainConfig{Network: "testnet"}, prefix: "STX"},
		{name: "prefix override", config: ChainConfig{Network: "mainnet", AddressPrefix: "TST"}, prefix: "TST"},
		{
			name: "custom network",
			config: ChainConfig{
				Network:       "private",
				ChainID:       "18dcf0a285365fc58b71f18b3d3fec954aa0c141c44e4e5cb4cf777b9eab274e",
				AddressPrefix: "TST",
			},
			prefix: "TST",
		},
		{name: "custom network without chain id", config: ChainConfig{Network: "private"}, wantErr: true},
		{name: "short chain id", config: ChainConfig{Network: "mainnet", ChainID: "00ff"}, wantErr: true},
		{name: "bad chain id", config: ChainConfig{Network: "mainnet", ChainID: "xyz"}, wantErr: true},
		{name: "long prefix", config: ChainConfig{Network: "mainnet", AddressPrefix: "STEEM"}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.config.CheckConfig()
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.prefix, test.config.AddressPrefix)
			assert.Len(t, test.config.GetChainID(), 32)
		})
	}
	assert.Equal(t, make([]byte, 32), MainnetChainID())
}

func TestConfirmationTimeout(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 2*time.Minute, config.ConfirmationTimeout())

	config.Broadcast.ExpireSeconds = 30
	config.RPC.Timeout = 10
	assert.Equal(t, 40*time.Second, config.ConfirmationTimeout())

	config.RPC.Timeout = 0
	assert.Equal(t, time.Duration(0), config.ConfirmationTimeout())
}

func TestVersionWithCommit(t *testing.T) {
	assert.Equal(t, VersionWithMeta, VersionWithCommit("", ""))
	assert.Equal(t, VersionWithMeta+"-0123abcd-20201010", VersionWithCommit("0123abcdef", "20201010"))
}
