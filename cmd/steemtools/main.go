package main

import (
	"os"
	"sort"

	"github.com/anyswap/steem-client/cmd/utils"
	"github.com/anyswap/steem-client/log"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "steemtools"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the steemtools command line interface")
)

func initApp() {
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		utils.VersionCommand,
		keysCommand,
		signCommand,
		callCommand,
		broadcastCommand,
		streamCommand,
	}
	app.Flags = append(utils.CommonFlags, utils.NetworkFlag, utils.NodeFlag)
	app.Before = func(ctx *cli.Context) error {
		utils.SetLogger(ctx)
		return nil
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
