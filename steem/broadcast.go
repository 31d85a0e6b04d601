package steem

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/anyswap/steem-client/common"
	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/log"
	"github.com/anyswap/steem-client/serializer"
	"github.com/anyswap/steem-client/signer"
	"github.com/anyswap/steem-client/types"
)

const networkBroadcastAPI = "network_broadcast_api"

// NewTransaction builds an unsigned transaction referencing the head block of props
func NewTransaction(props *types.DynamicGlobalProperties, ops []types.Operation, expire time.Duration) (*types.Transaction, error) {
	if len(ops) == 0 {
		return nil, ErrNoOperations
	}
	headID, err := common.ParseHexBytes(props.HeadBlockID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeadBlockID, err)
	}
	if len(headID) < 8 {
		return nil, fmt.Errorf("%w: %q too short", ErrInvalidHeadBlockID, props.HeadBlockID)
	}
	return &types.Transaction{
		RefBlockNum:    uint16(props.HeadBlockNumber & 0xffff),
		RefBlockPrefix: binary.LittleEndian.Uint32(headID[4:8]),
		Expiration:     props.Time.Add(expire),
		Operations:     ops,
		Extensions:     []string{},
	}, nil
}

// BuildTransaction builds an unsigned transaction on the current head block
func (c *Client) BuildTransaction(ctx context.Context, ops []types.Operation) (*types.Transaction, error) {
	props, err := c.GetDynamicGlobalProperties(ctx)
	if err != nil {
		return nil, err
	}
	return NewTransaction(props, ops, c.opts.ExpireTime)
}

// Sign signs tx with keys on the client's chain
func (c *Client) Sign(tx *types.Transaction, keys ...*crypto.PrivateKey) (*types.SignedTransaction, error) {
	return signer.SignTransaction(tx, keys, c.SignerOptions())
}

// Send broadcasts a signed transaction and waits for its inclusion
func (c *Client) Send(ctx context.Context, stx *types.SignedTransaction) (*types.TransactionConfirmation, error) {
	var result types.TransactionConfirmation
	err := c.Call(ctx, condenserAPI, "broadcast_transaction_synchronous", []interface{}{stx}, &result)
	if err != nil {
		return nil, err
	}
	return checkConfirmation(&result)
}

// SendWithCallback broadcasts a signed transaction and waits for the
// confirmation the node pushes once the transaction is included.
func (c *Client) SendWithCallback(ctx context.Context, stx *types.SignedTransaction) (*types.TransactionConfirmation, error) {
	var result types.TransactionConfirmation
	err := c.transport.Notify(ctx, networkBroadcastAPI, "broadcast_transaction_with_callback", []interface{}{stx}, &result)
	if err != nil {
		return nil, err
	}
	return checkConfirmation(&result)
}

// SendOperations builds, signs and broadcasts ops
func (c *Client) SendOperations(ctx context.Context, ops []types.Operation, keys ...*crypto.PrivateKey) (*types.TransactionConfirmation, error) {
	tx, err := c.BuildTransaction(ctx, ops)
	if err != nil {
		return nil, err
	}
	stx, err := c.Sign(tx, keys...)
	if err != nil {
		return nil, err
	}
	txid, err := signer.TransactionID(tx)
	if err != nil {
		return nil, err
	}
	log.Info("send transaction", "txid", txid, "ops", len(ops), "refBlockNum", tx.RefBlockNum, "expiration", tx.Expiration)
	confirmation, err := c.Send(ctx, stx)
	if err != nil {
		log.Warn("send transaction failed", "txid", txid, "err", err)
		return confirmation, err
	}
	log.Info("send transaction success", "txid", txid, "blockNum", confirmation.BlockNum, "trxNum", confirmation.TrxNum)
	return confirmation, nil
}

func checkConfirmation(result *types.TransactionConfirmation) (*types.TransactionConfirmation, error) {
	if result.Expired {
		return result, &BroadcastError{TxID: result.ID, Confirmation: result}
	}
	return result, nil
}

// BuildWitnessSetProperties builds witness_set_properties of owner.
// props.Key must be the current signing key.
func BuildWitnessSetProperties(owner string, props *types.WitnessProps) (types.Operation, error) {
	serialized, err := serializer.SerializeWitnessProps(props)
	if err != nil {
		return types.Operation{}, err
	}
	return types.NewOperation(&types.WitnessSetPropertiesOperation{
		Owner:      owner,
		Props:      serialized,
		Extensions: types.FutureExtensions{},
	}), nil
}
