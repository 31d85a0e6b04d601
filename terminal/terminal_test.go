package terminal

import (
	"encoding/json"
	"testing"

	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/types"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestSprintOperation(t *testing.T) {
	op := types.NewOperation(&types.TransferOperation{
		From:   "foo",
		To:     "bar",
		Amount: types.MustParseAsset("1.000 STEEM"),
		Memo:   "hi",
	})
	assert.Equal(t, `transfer                 foo              => bar              1.000 STEEM "hi"`, Sprint(op, Default))
	assert.Equal(t, `    transfer                 foo              => bar              1.000 STEEM "hi"`, Sprint(op, Indent))
}

func TestSprintAppliedOperation(t *testing.T) {
	var applied types.AppliedOperation
	require.NoError(t, json.Unmarshal([]byte(`{
		"trx_id": "0000000000000000000000000000000000000000", "block": 12, "virtual_op": 1,
		"timestamp": "2018-03-21T12:00:00", "op": ["producer_reward", {"producer": "gtg"}]
	}`), &applied))

	text := Sprint(&applied, ShowBlockNum|ShowTransactionID)
	assert.Equal(t, `12        0000000000000000000000000000000000000000 producer_reward          {"producer": "gtg"}`, text)
}

func TestSprintKey(t *testing.T) {
	key := crypto.PrivateKeyFromSeed("hello")
	text := Sprint(&Key{Label: "active", Private: key, Public: key.PublicKey()}, Default)
	assert.Equal(t, "active   STM7s4VJuYFfHq8HCPpgC649Lu7CjA1V9oXgPfv8f3fszKMk3Kny9 5JA5gN4G78DhFSW4jr28vjb8JEX5UhVMZB16Jr6MjDGaeguJEvm", text)

	assert.Contains(t, Sprint(&Key{Label: "memo"}, Default), "Cannot format")
}

func TestSprintConfirmation(t *testing.T) {
	text := Sprint(&types.TransactionConfirmation{ID: "abc", BlockNum: 5, TrxNum: 1}, Default)
	assert.Equal(t, "Transaction abc in block 5 at 1 expired ✗", text)
}
