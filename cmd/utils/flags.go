package utils

import (
	"time"

	"github.com/anyswap/steem-client/log"
	"github.com/anyswap/steem-client/params"
	"github.com/urfave/cli/v2"
)

var (
	// ConfigFileFlag --config
	ConfigFileFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Specify config file",
	}
	// VerbosityFlag --verbosity
	VerbosityFlag = &cli.Uint64Flag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value:   4,
	}
	// JSONFormatFlag --json
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	// ColorFormatFlag --color
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "output log in color text format",
		Value: true,
	}
	// LogFileFlag --log
	LogFileFlag = &cli.StringFlag{
		Name:  "log",
		Usage: "Specify log file, support rotate",
	}
	// LogRotationFlag --log.rotate
	LogRotationFlag = &cli.Uint64Flag{
		Name:  "log.rotate",
		Usage: "log rotation time (unit hour)",
		Value: 24,
	}
	// LogMaxAgeFlag --log.maxage
	LogMaxAgeFlag = &cli.Uint64Flag{
		Name:  "log.maxage",
		Usage: "log max age (unit hour)",
		Value: 720,
	}

	// NetworkFlag --network
	NetworkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "network name (mainnet, testnet), overrides config",
	}
	// NodeFlag --node
	NodeFlag = &cli.StringFlag{
		Name:  "node",
		Usage: "websocket node address, overrides config",
	}
)

// CommonFlags flags shared by all commands
var CommonFlags = []cli.Flag{
	ConfigFileFlag,
	LogFileFlag,
	LogRotationFlag,
	LogMaxAgeFlag,
	VerbosityFlag,
	JSONFormatFlag,
	ColorFormatFlag,
}

// SetLogger set log level, format and log file
func SetLogger(ctx *cli.Context) {
	logLevel := ctx.Uint64(VerbosityFlag.Name)
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(uint32(logLevel), jsonFormat, colorFormat)

	logFile := ctx.String(LogFileFlag.Name)
	if logFile != "" {
		logRotation := ctx.Uint64(LogRotationFlag.Name)
		logMaxAge := ctx.Uint64(LogMaxAgeFlag.Name)
		if err := log.SetLogFile(logFile, time.Duration(logRotation)*time.Hour, time.Duration(logMaxAge)*time.Hour); err != nil {
			log.Fatal("set log file failed", "file", logFile, "err", err)
		}
	}
}

// SetLogFileFromConfig routes logs to the config log file if no --log flag is given
func SetLogFileFromConfig(ctx *cli.Context, config *params.ClientConfig) {
	if ctx.IsSet(LogFileFlag.Name) || config.Log == nil || config.Log.File == "" {
		return
	}
	rotation := time.Duration(config.Log.RotationHours) * time.Hour
	maxAge := time.Duration(config.Log.MaxAgeHours) * time.Hour
	if err := log.SetLogFile(config.Log.File, rotation, maxAge); err != nil {
		log.Fatal("set log file failed", "file", config.Log.File, "err", err)
	}
}

// GetConfigFilePath specified by `-c|--config`
func GetConfigFilePath(ctx *cli.Context) string {
	return ctx.String(ConfigFileFlag.Name)
}

// LoadConfig loads config file and applies the network and node flags
func LoadConfig(ctx *cli.Context) *params.ClientConfig {
	config := params.LoadConfig(GetConfigFilePath(ctx))
	changed := false
	if network := ctx.String(NetworkFlag.Name); network != "" {
		config.Chain = &params.ChainConfig{Network: network}
		changed = true
	}
	if node := ctx.String(NodeFlag.Name); node != "" {
		config.RPC.Address = node
		changed = true
	}
	if changed {
		if err := config.CheckConfig(); err != nil {
			log.Fatal("check config failed", "err", err)
		}
	}
	SetLogFileFromConfig(ctx, config)
	return config
}
