package params

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/anyswap/steem-client/common"
	"github.com/anyswap/steem-client/log"
)

const (
	defaultIdentifier    = "steemtools"
	defaultRPCAddress    = "wss://api.steemit.com"
	defaultRPCTimeout    = 60
	defaultExpireSeconds = 60
	defaultPollInterval  = 3
)

// stream modes
const (
	StreamModeIrreversible = "irreversible"
	StreamModeLatest       = "latest"
)

var (
	clientConfig      *ClientConfig
	loadConfigStarter sync.Once
)

// ClientConfig config items (decode from toml file)
type ClientConfig struct {
	Identifier string
	Chain      *ChainConfig
	RPC        *RPCConfig
	Broadcast  *BroadcastConfig `toml:",omitempty" json:",omitempty"`
	Stream     *StreamConfig    `toml:",omitempty" json:",omitempty"`
	Log        *LogConfig       `toml:",omitempty" json:",omitempty"`
}

// RPCConfig node connection config
type RPCConfig struct {
	Address     string
	Timeout     uint64 // seconds, 0 disables call timeouts
	AutoConnect bool
}

// BroadcastConfig broadcast config
type BroadcastConfig struct {
	ExpireSeconds uint64
}

// ConfirmationTimeout bounds waiting for a broadcast confirmation:
// the call timeout plus the transaction lifetime. 0 means no bound.
func (c *ClientConfig) ConfirmationTimeout() time.Duration {
	if c.RPC == nil || c.RPC.Timeout == 0 {
		return 0
	}
	var expire uint64
	if c.Broadcast != nil {
		expire = c.Broadcast.ExpireSeconds
	}
	return time.Duration(c.RPC.Timeout+expire) * time.Second
}

// StreamConfig block stream config
type StreamConfig struct {
	Mode         string
	PollInterval uint64 // seconds
	CheckpointDB string `toml:",omitempty" json:",omitempty"`
}

// LogConfig log file config
type LogConfig struct {
	File          string
	RotationHours uint64
	MaxAgeHours   uint64
}

// DefaultConfig returns a mainnet config talking to the public node
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Identifier: defaultIdentifier,
		Chain:      &ChainConfig{Network: MainnetName},
		RPC: &RPCConfig{
			Address:     defaultRPCAddress,
			Timeout:     defaultRPCTimeout,
			AutoConnect: true,
		},
		Broadcast: &BroadcastConfig{ExpireSeconds: defaultExpireSeconds},
		Stream: &StreamConfig{
			Mode:         StreamModeIrreversible,
			PollInterval: defaultPollInterval,
		},
	}
}

// GetConfig get client config
func GetConfig() *ClientConfig {
	return clientConfig
}

// SetConfig set client config
func SetConfig(config *ClientConfig) {
	clientConfig = config
}

// GetChainConfig get chain config
func GetChainConfig() *ChainConfig {
	return GetConfig().Chain
}

// GetRPCConfig get rpc config
func GetRPCConfig() *RPCConfig {
	return GetConfig().RPC
}

// GetBroadcastConfig get broadcast config
func GetBroadcastConfig() *BroadcastConfig {
	return GetConfig().Broadcast
}

// GetStreamConfig get stream config
func GetStreamConfig() *StreamConfig {
	return GetConfig().Stream
}

// DecodeConfigFile decodes and checks a toml config file
func DecodeConfigFile(configFile string) (*ClientConfig, error) {
	if !common.FileExist(configFile) {
		return nil, fmt.Errorf("config file %v not exist", configFile)
	}
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configFile, config); err != nil {
		return nil, fmt.Errorf("toml DecodeFile: %w", err)
	}
	if err := config.CheckConfig(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfig load config, use defaults if configFile is empty
func LoadConfig(configFile string) *ClientConfig {
	loadConfigStarter.Do(func() {
		config := DefaultConfig()
		if configFile == "" {
			log.Info("no config file specified, use default config")
			if err := config.CheckConfig(); err != nil {
				log.Fatalf("Check default config failed. %v", err)
			}
		} else {
			log.Println("Config file is", configFile)
			var err error
			config, err = DecodeConfigFile(configFile)
			if err != nil {
				log.Fatalf("LoadConfig error: %v", err)
			}
		}
		SetConfig(config)

		var bs []byte
		if log.JSONFormat {
			bs, _ = json.Marshal(config)
		} else {
			bs, _ = json.MarshalIndent(config, "", "  ")
		}
		log.Println("LoadConfig finished.", string(bs))
	})
	return clientConfig
}
