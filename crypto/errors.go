package crypto

import "errors"

// key and signature errors
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrInvalidNetworkID   = errors.New("invalid network id")
	ErrInvalidPrefix      = errors.New("invalid public key prefix")
	ErrInvalidKeyLength   = errors.New("invalid key length")
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrInvalidPublicKey   = errors.New("invalid public key")
	ErrInvalidDigest      = errors.New("digest must be 32 bytes")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrTooManySignAttempt = errors.New("no canonical signature found")
)
