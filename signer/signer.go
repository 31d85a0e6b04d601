// Package signer digests, signs and recovers transactions.
package signer

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/params"
	"github.com/anyswap/steem-client/serializer"
	"github.com/anyswap/steem-client/types"
)

const chainIDLength = 32

// signer errors
var (
	ErrInvalidChainID = errors.New("chain id must be 32 bytes")
	ErrNoSigningKeys  = errors.New("no signing keys")
)

// Options chain parameters used by digests
type Options struct {
	ChainID       []byte
	AddressPrefix string
}

// OptionsFromConfig returns options of a chain config
func OptionsFromConfig(cfg *params.ChainConfig) Options {
	return Options{
		ChainID:       cfg.GetChainID(),
		AddressPrefix: cfg.AddressPrefix,
	}
}

func (opts Options) prefix() string {
	if opts.AddressPrefix == "" {
		return crypto.DefaultAddressPrefix
	}
	return opts.AddressPrefix
}

// TransactionDigest sha256(chainID ++ serialize(tx))
func TransactionDigest(tx *types.Transaction, chainID []byte) ([]byte, error) {
	if len(chainID) != chainIDLength {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidChainID, len(chainID))
	}
	data, err := serializer.SerializeTransaction(tx)
	if err != nil {
		return nil, err
	}
	return crypto.Sha256(chainID, data), nil
}

// TransactionID first 20 bytes of sha256(serialize(tx)) in hex
func TransactionID(tx *types.Transaction) (string, error) {
	data, err := serializer.SerializeTransaction(tx)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(crypto.Sha256(data)[:20]), nil
}

// SignTransaction returns a copy of tx with one signature appended per key in key order.
// Serialization errors are returned before any key is used.
func SignTransaction(tx *types.Transaction, keys []*crypto.PrivateKey, opts Options) (*types.SignedTransaction, error) {
	digest, err := TransactionDigest(tx, opts.ChainID)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrNoSigningKeys
	}
	cloned, err := tx.Clone()
	if err != nil {
		return nil, err
	}
	stx := &types.SignedTransaction{
		Transaction: *cloned,
		Signatures:  make([]string, 0, len(keys)),
	}
	for i, key := range keys {
		sig, err := key.Sign(digest)
		if err != nil {
			return nil, fmt.Errorf("sign with key %v failed: %w", i, err)
		}
		stx.Signatures = append(stx.Signatures, sig.String())
	}
	return stx, nil
}

// AppendSignatures signs an already signed transaction with more keys
func AppendSignatures(stx *types.SignedTransaction, keys []*crypto.PrivateKey, opts Options) (*types.SignedTransaction, error) {
	signed, err := SignTransaction(&stx.Transaction, keys, opts)
	if err != nil {
		return nil, err
	}
	signed.Signatures = append(append([]string{}, stx.Signatures...), signed.Signatures...)
	return signed, nil
}

// RecoverSigners returns the public keys implied by each signature, in signature order
func RecoverSigners(stx *types.SignedTransaction, opts Options) ([]*crypto.PublicKey, error) {
	digest, err := TransactionDigest(&stx.Transaction, opts.ChainID)
	if err != nil {
		return nil, err
	}
	signers := make([]*crypto.PublicKey, 0, len(stx.Signatures))
	for i, s := range stx.Signatures {
		sig, err := crypto.ParseSignature(s)
		if err != nil {
			return nil, fmt.Errorf("signature %v: %w", i, err)
		}
		pub, err := sig.Recover(digest, opts.prefix())
		if err != nil {
			return nil, fmt.Errorf("signature %v: %w", i, err)
		}
		signers = append(signers, pub)
	}
	return signers, nil
}

// VerifySigners reports whether every expected key signed stx
func VerifySigners(stx *types.SignedTransaction, expected []*crypto.PublicKey, opts Options) (bool, error) {
	signers, err := RecoverSigners(stx, opts)
	if err != nil {
		return false, err
	}
	for _, want := range expected {
		found := false
		for _, have := range signers {
			if have.Equal(want) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
