package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/anyswap/steem-client/crypto"
	"github.com/urfave/cli/v2"
)

var (
	wifFlag = &cli.StringSliceFlag{
		Name:  "wif",
		Usage: "wif private key, signs in the given order (can repeat)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write result to file instead of stdout",
	}
)

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %v: %w", path, err)
	}
	return nil
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if output := ctx.String(outputFlag.Name); output != "" {
		return os.WriteFile(output, append(data, '\n'), 0o600)
	}
	fmt.Println(string(data))
	return nil
}

func getSigningKeys(ctx *cli.Context) ([]*crypto.PrivateKey, error) {
	wifs := ctx.StringSlice(wifFlag.Name)
	if len(wifs) == 0 {
		return nil, fmt.Errorf("missing --%v", wifFlag.Name)
	}
	keys := make([]*crypto.PrivateKey, 0, len(wifs))
	for i, wif := range wifs {
		key, err := crypto.PrivateKeyFromWif(wif)
		if err != nil {
			return nil, fmt.Errorf("wif key %v: %w", i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
