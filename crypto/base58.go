package crypto

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

const checksumLength = 4

type checksumFunc func([]byte) []byte

func ripemd160Checksum(b []byte) []byte {
	return Ripemd160(b)[:checksumLength]
}

func doubleSha256Checksum(b []byte) []byte {
	return DoubleSha256(b)[:checksumLength]
}

// encodeChecked returns base58(payload ++ checksum(payload))
func encodeChecked(payload []byte, checksum checksumFunc) string {
	buf := make([]byte, 0, len(payload)+checksumLength)
	buf = append(buf, payload...)
	buf = append(buf, checksum(payload)...)
	return base58.Encode(buf)
}

// decodeChecked verifies and strips the trailing checksum
func decodeChecked(s string, checksum checksumFunc) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) <= checksumLength {
		return nil, fmt.Errorf("bad base58 string %q: %w", s, ErrInvalidKeyLength)
	}
	payload := decoded[:len(decoded)-checksumLength]
	if !bytes.Equal(checksum(payload), decoded[len(payload):]) {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}
