package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Sha256 returns sha256 of the concatenated data
func Sha256(data ...[]byte) []byte {
	hasher := sha256.New()
	for _, b := range data {
		_, _ = hasher.Write(b)
	}
	return hasher.Sum(nil)
}

// DoubleSha256 returns sha256(sha256(b))
func DoubleSha256(b []byte) []byte {
	return Sha256(Sha256(b))
}

// Ripemd160 returns ripemd160 of b
func Ripemd160(b []byte) []byte {
	hasher := ripemd160.New()
	_, _ = hasher.Write(b)
	return hasher.Sum(nil)
}
