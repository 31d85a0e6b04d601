package main

import (
	"github.com/anyswap/steem-client/cmd/utils"
	"github.com/anyswap/steem-client/log"
	"github.com/anyswap/steem-client/signer"
	"github.com/anyswap/steem-client/types"
	"github.com/urfave/cli/v2"
)

var (
	txFileFlag = &cli.StringFlag{
		Name:     "tx",
		Usage:    "unsigned or signed transaction json file",
		Required: true,
	}

	signCommand = &cli.Command{
		Action:    signAction,
		Name:      "sign",
		Usage:     "sign a transaction offline",
		ArgsUsage: " ",
		Description: `
sign the transaction in --tx with every --wif key and print the signed
transaction. signatures already in the file are kept and new ones appended.
`,
		Flags: []cli.Flag{
			txFileFlag,
			wifFlag,
			outputFlag,
		},
	}
)

func signAction(ctx *cli.Context) error {
	config := utils.LoadConfig(ctx)
	opts := signer.OptionsFromConfig(config.Chain)

	var stx types.SignedTransaction
	if err := readJSONFile(ctx.String(txFileFlag.Name), &stx); err != nil {
		return err
	}
	keys, err := getSigningKeys(ctx)
	if err != nil {
		return err
	}
	signed, err := signer.AppendSignatures(&stx, keys, opts)
	if err != nil {
		return err
	}
	txid, err := signer.TransactionID(&signed.Transaction)
	if err != nil {
		return err
	}
	log.Info("sign transaction success", "txid", txid, "network", config.Chain.Network, "signatures", len(signed.Signatures))
	return writeJSON(ctx, signed)
}
