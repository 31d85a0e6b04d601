package serializer

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/anyswap/steem-client/crypto"
	"github.com/anyswap/steem-client/types"
)

const assetSymbolLength = 7

// Buffer canonical little endian writer.
// The first error is kept and every later write is skipped,
// Bytes returns nothing once an error occurred.
type Buffer struct {
	buf bytes.Buffer
	err error
}

// NewBuffer returns an empty buffer
func NewBuffer() *Buffer {
	return new(Buffer)
}

// Err returns the first write error
func (b *Buffer) Err() error {
	return b.err
}

// Fail records err if no error occurred yet
func (b *Buffer) Fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Bytes returns written bytes, or the first error
func (b *Buffer) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.buf.Bytes(), nil
}

// Len returns number of written bytes
func (b *Buffer) Len() int {
	return b.buf.Len()
}

func (b *Buffer) write(p []byte) {
	if b.err == nil {
		b.buf.Write(p)
	}
}

// WriteUint8 writes one byte
func (b *Buffer) WriteUint8(v uint8) {
	b.write([]byte{v})
}

// WriteUint16 writes u16 LE
func (b *Buffer) WriteUint16(v uint16) {
	var p [2]byte
	binary.LittleEndian.PutUint16(p[:], v)
	b.write(p[:])
}

// WriteUint32 writes u32 LE
func (b *Buffer) WriteUint32(v uint32) {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], v)
	b.write(p[:])
}

// WriteUint64 writes u64 LE
func (b *Buffer) WriteUint64(v uint64) {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], v)
	b.write(p[:])
}

// WriteInt16 writes i16 LE
func (b *Buffer) WriteInt16(v int16) {
	b.WriteUint16(uint16(v))
}

// WriteInt64 writes i64 LE
func (b *Buffer) WriteInt64(v int64) {
	b.WriteUint64(uint64(v))
}

// WriteVarint writes unsigned LEB128
func (b *Buffer) WriteVarint(v uint64) {
	var p [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(p[:], v)
	b.write(p[:n])
}

// WriteLength writes a collection length, lengths are u32 on chain
func (b *Buffer) WriteLength(n int) {
	if uint64(n) > 0xffffffff {
		b.Fail(fmt.Errorf("%w: length %v", ErrVarintOverflow, n))
		return
	}
	b.WriteVarint(uint64(n))
}

// WriteBool writes 0 or 1
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteUint8(1)
	} else {
		b.WriteUint8(0)
	}
}

// WriteBytes writes varint length and raw bytes
func (b *Buffer) WriteBytes(p []byte) {
	b.WriteLength(len(p))
	b.write(p)
}

// WriteString writes varint length and utf-8 bytes
func (b *Buffer) WriteString(s string) {
	b.WriteBytes([]byte(s))
}

// WriteStrings writes Array(String)
func (b *Buffer) WriteStrings(list []string) {
	b.WriteLength(len(list))
	for _, s := range list {
		b.WriteString(s)
	}
}

// WriteDate writes unix seconds as u32
func (b *Buffer) WriteDate(t types.Time) {
	secs := t.Unix()
	if secs < 0 || secs > 0xffffffff {
		b.Fail(fmt.Errorf("date %v out of range", t))
		return
	}
	b.WriteUint32(uint32(secs))
}

// WriteAsset writes i64 scaled amount, precision and 7 byte symbol
func (b *Buffer) WriteAsset(a types.Asset) {
	precision, err := a.Symbol.Precision()
	if err != nil {
		b.Fail(err)
		return
	}
	amount, err := a.ScaledAmount()
	if err != nil {
		b.Fail(err)
		return
	}
	if len(a.Symbol) > assetSymbolLength {
		b.Fail(fmt.Errorf("%w: %q", ErrAssetSymbolTooLong, string(a.Symbol)))
		return
	}
	var symbol [assetSymbolLength]byte
	copy(symbol[:], a.Symbol)
	b.WriteInt64(amount)
	b.WriteUint8(uint8(precision))
	b.write(symbol[:])
}

// WritePrice writes base then quote
func (b *Buffer) WritePrice(p types.Price) {
	b.WriteAsset(p.Base)
	b.WriteAsset(p.Quote)
}

// WritePublicKey writes 33 raw key bytes
func (b *Buffer) WritePublicKey(key *crypto.PublicKey) {
	if key == nil {
		b.Fail(fmt.Errorf("%w: public key", ErrMissingField))
		return
	}
	b.write(key.Bytes())
}

// WriteAuthority writes threshold and both auth maps in caller order
func (b *Buffer) WriteAuthority(auth *types.Authority) {
	if auth == nil {
		b.Fail(fmt.Errorf("%w: authority", ErrMissingField))
		return
	}
	b.WriteUint32(auth.WeightThreshold)
	b.WriteLength(len(auth.AccountAuths))
	for _, a := range auth.AccountAuths {
		b.WriteString(a.Account)
		b.WriteUint16(a.Weight)
	}
	b.WriteLength(len(auth.KeyAuths))
	for _, k := range auth.KeyAuths {
		b.WritePublicKey(k.Key)
		b.WriteUint16(k.Weight)
	}
}

// WriteOptionalAuthority writes presence byte then authority
func (b *Buffer) WriteOptionalAuthority(auth *types.Authority) {
	b.WriteBool(auth != nil)
	if auth != nil {
		b.WriteAuthority(auth)
	}
}

// WriteOptionalPublicKey writes presence byte then key
func (b *Buffer) WriteOptionalPublicKey(key *crypto.PublicKey) {
	b.WriteBool(key != nil)
	if key != nil {
		b.WritePublicKey(key)
	}
}

// WriteFutureExtensions writes the empty extension list
func (b *Buffer) WriteFutureExtensions(ext types.FutureExtensions) {
	if len(ext) != 0 {
		b.Fail(fmt.Errorf("%w: got %v", ErrNonEmptyExtensions, len(ext)))
		return
	}
	b.WriteVarint(0)
}
