package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anyswap/steem-client/cmd/utils"
	"github.com/anyswap/steem-client/steem"
	"github.com/urfave/cli/v2"
)

var callCommand = &cli.Command{
	Action:    callAction,
	Name:      "call",
	Usage:     "call a node api method",
	ArgsUsage: "<api> <method> [params json]",
	Description: `
call api.method with params (a json array, default []) and print the result.
example: steemtools call condenser_api get_block '[1]'
`,
	Flags: []cli.Flag{
		outputFlag,
	},
}

func callAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 || ctx.NArg() > 3 {
		return fmt.Errorf("wrong number of arguments %v, want <api> <method> [params]", ctx.NArg())
	}
	api := ctx.Args().Get(0)
	method := ctx.Args().Get(1)
	params := json.RawMessage("[]")
	if ctx.NArg() == 3 {
		params = json.RawMessage(ctx.Args().Get(2))
		if !json.Valid(params) {
			return fmt.Errorf("params %q is not valid json", ctx.Args().Get(2))
		}
	}

	config := utils.LoadConfig(ctx)
	client := steem.NewClient(config)
	defer client.Close()

	var result json.RawMessage
	if err := client.Call(context.Background(), api, method, params, &result); err != nil {
		return err
	}
	return writeJSON(ctx, result)
}
