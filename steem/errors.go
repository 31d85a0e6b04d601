package steem

import (
	"errors"
	"fmt"

	"github.com/anyswap/steem-client/types"
)

// steem helper errors
var (
	ErrBlockNotFound      = errors.New("block not found")
	ErrTransactionExpired = errors.New("transaction expired")
	ErrInvalidHeadBlockID = errors.New("invalid head block id")
	ErrInvalidBlockRange  = errors.New("invalid block range")
	ErrNoOperations       = errors.New("no operations")
)

// BroadcastError node accepted the call but reports the transaction expired
type BroadcastError struct {
	TxID         string
	Confirmation *types.TransactionConfirmation
}

// Error implements error
func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast %v: %v", e.TxID, ErrTransactionExpired)
}

// Unwrap returns ErrTransactionExpired
func (e *BroadcastError) Unwrap() error {
	return ErrTransactionExpired
}
