package types

import (
	"encoding/json"
	"fmt"
)

// Transaction unsigned transaction
type Transaction struct {
	RefBlockNum    uint16      `json:"ref_block_num"`
	RefBlockPrefix uint32      `json:"ref_block_prefix"`
	Expiration     Time        `json:"expiration"`
	Operations     []Operation `json:"operations"`
	Extensions     []string    `json:"extensions"`
}

// SignedTransaction transaction with hex signatures in key order
type SignedTransaction struct {
	Transaction
	Signatures []string `json:"signatures"`
}

// TransactionConfirmation result of a synchronous broadcast
type TransactionConfirmation struct {
	ID       string `json:"id"`
	BlockNum uint32 `json:"block_num"`
	TrxNum   uint32 `json:"trx_num"`
	Expired  bool   `json:"expired"`
}

// Clone deep copies the transaction through its json form
func (tx *Transaction) Clone() (*Transaction, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("clone transaction: %w", err)
	}
	cloned := new(Transaction)
	if err = json.Unmarshal(data, cloned); err != nil {
		return nil, fmt.Errorf("clone transaction: %w", err)
	}
	return cloned, nil
}

// Clone deep copies the signed transaction
func (stx *SignedTransaction) Clone() (*SignedTransaction, error) {
	tx, err := stx.Transaction.Clone()
	if err != nil {
		return nil, err
	}
	return &SignedTransaction{
		Transaction: *tx,
		Signatures:  append([]string{}, stx.Signatures...),
	}, nil
}
