package serializer

import (
	"github.com/anyswap/steem-client/types"
)

// SerializeTransaction returns canonical bytes of tx, signatures are never included
func SerializeTransaction(tx *types.Transaction) ([]byte, error) {
	b := NewBuffer()
	b.WriteTransaction(tx)
	data, err := b.Bytes()
	if err != nil {
		return nil, wrapError("transaction", err)
	}
	return data, nil
}

// WriteTransaction writes header, operations and extensions
func (b *Buffer) WriteTransaction(tx *types.Transaction) {
	if tx == nil {
		b.Fail(ErrMissingField)
		return
	}
	b.WriteUint16(tx.RefBlockNum)
	b.WriteUint32(tx.RefBlockPrefix)
	b.WriteDate(tx.Expiration)
	b.WriteLength(len(tx.Operations))
	for _, op := range tx.Operations {
		b.WriteOperation(op)
	}
	b.WriteStrings(tx.Extensions)
}
