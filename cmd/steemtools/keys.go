package main

import (
	"errors"

	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/terminal"
	"github.com/urfave/cli/v2"
)

var (
	usernameFlag = &cli.StringFlag{
		Name:  "username",
		Usage: "account name of login derived keys",
	}
	passwordFlag = &cli.StringFlag{
		Name:  "password",
		Usage: "account password of login derived keys",
	}
	roleFlag = &cli.StringSliceFlag{
		Name:  "role",
		Usage: "key roles of login derived keys",
		Value: cli.NewStringSlice(string(crypto.RoleOwner), string(crypto.RoleActive), string(crypto.RolePosting), string(crypto.RoleMemo)),
	}
	seedFlag = &cli.StringFlag{
		Name:  "seed",
		Usage: "derive key as sha256(seed)",
	}
	pubkeyFlag = &cli.StringFlag{
		Name:  "pubkey",
		Usage: "public key text to check and re-prefix",
	}
	randomFlag = &cli.BoolFlag{
		Name:  "random",
		Usage: "generate a random key",
	}
	prefixFlag = &cli.StringFlag{
		Name:  "prefix",
		Usage: "public key address prefix",
		Value: crypto.DefaultAddressPrefix,
	}

	keysCommand = &cli.Command{
		Action: keysAction,
		Name:   "keys",
		Usage:  "derive and convert keys",
		Description: `
derive keys from login (--username --password [--role]), seed (--seed),
wif (--wif) or generate one (--random); convert public key prefix (--pubkey).
`,
		Flags: []cli.Flag{
			usernameFlag,
			passwordFlag,
			roleFlag,
			seedFlag,
			wifFlag,
			pubkeyFlag,
			randomFlag,
			prefixFlag,
		},
	}
)

func keysAction(ctx *cli.Context) error {
	keys, err := collectKeys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		terminal.Println(key, terminal.Default)
	}
	return nil
}

func collectKeys(ctx *cli.Context) ([]*terminal.Key, error) {
	prefix := ctx.String(prefixFlag.Name)
	var keys []*terminal.Key
	addPrivate := func(label string, key *crypto.PrivateKey) {
		keys = append(keys, &terminal.Key{Label: label, Private: key, Public: key.PublicKeyWithPrefix(prefix)})
	}

	if username := ctx.String(usernameFlag.Name); username != "" {
		password := ctx.String(passwordFlag.Name)
		if password == "" {
			return nil, errors.New("missing --password")
		}
		for _, role := range ctx.StringSlice(roleFlag.Name) {
			addPrivate(role, crypto.PrivateKeyFromLogin(username, password, crypto.KeyRole(role)))
		}
	}
	if seed := ctx.String(seedFlag.Name); seed != "" {
		addPrivate("seed", crypto.PrivateKeyFromSeed(seed))
	}
	for _, wif := range ctx.StringSlice(wifFlag.Name) {
		key, err := crypto.PrivateKeyFromWif(wif)
		if err != nil {
			return nil, err
		}
		addPrivate("wif", key)
	}
	if pubkey := ctx.String(pubkeyFlag.Name); pubkey != "" {
		pub, err := crypto.PublicKeyFromString(pubkey)
		if err != nil {
			return nil, err
		}
		keys = append(keys, &terminal.Key{Label: "pubkey", Public: pub.WithPrefix(prefix)})
	}
	if ctx.Bool(randomFlag.Name) {
		key, err := crypto.GenerateRandomKey()
		if err != nil {
			return nil, err
		}
		addPrivate("random", key)
	}
	if len(keys) == 0 {
		return nil, errors.New("no key source specified")
	}
	return keys, nil
}
