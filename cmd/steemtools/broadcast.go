package main

import (
	"context"

	"github.com/anyswap/steem-client/cmd/utils"
	"github.com/anyswap/steem-client/signer"
	"github.com/anyswap/steem-client/steem"
	"github.com/anyswap/steem-client/terminal"
	"github.com/anyswap/steem-client/types"
	"github.com/urfave/cli/v2"
)

var (
	opsFileFlag = &cli.StringFlag{
		Name:     "ops",
		Usage:    "operations json file, an array of [name, payload]",
		Required: true,
	}
	callbackFlag = &cli.BoolFlag{
		Name:  "callback",
		Usage: "wait for the confirmation notification instead of the synchronous broadcast",
	}
	dryRunFlag = &cli.BoolFlag{
		Name:  "dryrun",
		Usage: "build and sign only, print the signed transaction",
	}

	broadcastCommand = &cli.Command{
		Action:    broadcastAction,
		Name:      "broadcast",
		Usage:     "sign and broadcast operations",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			opsFileFlag,
			wifFlag,
			callbackFlag,
			dryRunFlag,
			outputFlag,
		},
	}
)

func broadcastAction(ctx *cli.Context) error {
	var ops []types.Operation
	if err := readJSONFile(ctx.String(opsFileFlag.Name), &ops); err != nil {
		return err
	}
	keys, err := getSigningKeys(ctx)
	if err != nil {
		return err
	}

	config := utils.LoadConfig(ctx)
	client := steem.NewClient(config)
	defer client.Close()

	bgctx := context.Background()
	tx, err := client.BuildTransaction(bgctx, ops)
	if err != nil {
		return err
	}
	stx, err := client.Sign(tx, keys...)
	if err != nil {
		return err
	}
	txid, err := signer.TransactionID(tx)
	if err != nil {
		return err
	}
	terminal.Println(stx, terminal.Default)
	if ctx.Bool(dryRunFlag.Name) {
		return writeJSON(ctx, stx)
	}

	sendctx := bgctx
	if timeout := config.ConfirmationTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		sendctx, cancel = context.WithTimeout(bgctx, timeout)
		defer cancel()
	}
	var confirmation *types.TransactionConfirmation
	if ctx.Bool(callbackFlag.Name) {
		confirmation, err = client.SendWithCallback(sendctx, stx)
	} else {
		confirmation, err = client.Send(sendctx, stx)
	}
	if err != nil {
		return err
	}
	if confirmation.ID == "" {
		confirmation.ID = txid
	}
	terminal.Println(confirmation, terminal.Default)
	return nil
}
