package utils

import (
	"fmt"
	"runtime"

	"github.com/anyswap/steem-client/params"
	"github.com/urfave/cli/v2"
)

// VersionCommand version subcommand
var VersionCommand = &cli.Command{
	Action:    version,
	Name:      "version",
	Usage:     "Print version numbers",
	ArgsUsage: " ",
	Description: `
The output of this command is supposed to be machine-readable.
`,
}

func version(ctx *cli.Context) error {
	fmt.Println(clientIdentifier)
	fmt.Println("Version:", params.VersionWithMeta)
	if gitCommit != "" {
		fmt.Println("Git Commit:", gitCommit)
	}
	if gitDate != "" {
		fmt.Println("Git Commit Date:", gitDate)
	}
	fmt.Printf("Architecture: %v/%v\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println("Go Version:", runtime.Version())
	fmt.Printf("Mainnet Chain ID: %x\n", params.MainnetChainID())
	fmt.Printf("Testnet Chain ID: %x\n", params.TestnetChainID())
	return nil
}
