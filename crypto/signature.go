package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

const (
	signatureLength = 65

	// compact recovery byte offset of compressed keys (27 + 4)
	recoveryOffset = 31

	maxSignAttempts = 256
)

// Signature compact secp256k1 signature with recovery id
type Signature struct {
	Recovery byte
	Data     [64]byte // r ++ s
}

// SignatureFromBytes decodes recovery+31 ++ r ++ s
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != signatureLength {
		return nil, fmt.Errorf("%w: length %v", ErrInvalidSignature, len(b))
	}
	if b[0] < recoveryOffset || b[0] > recoveryOffset+3 {
		return nil, fmt.Errorf("%w: recovery byte %v", ErrInvalidSignature, b[0])
	}
	sig := &Signature{Recovery: b[0] - recoveryOffset}
	copy(sig.Data[:], b[1:])
	return sig, nil
}

// ParseSignature decodes hex signature
func ParseSignature(s string) (*Signature, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return SignatureFromBytes(b)
}

// Bytes returns recovery+31 ++ r ++ s
func (s *Signature) Bytes() []byte {
	b := make([]byte, 0, signatureLength)
	b = append(b, s.Recovery+recoveryOffset)
	return append(b, s.Data[:]...)
}

// String returns hex encoding
func (s *Signature) String() string {
	return hex.EncodeToString(s.Bytes())
}

// Recover returns the public key which produced signature over digest
func (s *Signature) Recover(digest []byte, prefix string) (*PublicKey, error) {
	if len(digest) != 32 {
		return nil, ErrInvalidDigest
	}
	pub, _, err := ecdsa.RecoverCompact(s.Bytes(), digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return NewPublicKey(pub.SerializeCompressed(), prefix)
}

// IsCanonical reports whether r ++ s is in the single encoding accepted by the network
func (s *Signature) IsCanonical() bool {
	return IsCanonical(s.Data[:])
}

// MarshalJSON implements json.Marshaler
func (s *Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Signature) UnmarshalJSON(input []byte) error {
	var str string
	if err := json.Unmarshal(input, &str); err != nil {
		return err
	}
	sig, err := ParseSignature(str)
	if err != nil {
		return err
	}
	*s = *sig
	return nil
}

func (s *Signature) ecdsa() *ecdsa.Signature {
	var r, sv btcec.ModNScalar
	r.SetByteSlice(s.Data[:32])
	sv.SetByteSlice(s.Data[32:])
	return ecdsa.NewSignature(&r, &sv)
}

// IsCanonical checks a 64 bytes r ++ s signature
func IsCanonical(sig []byte) bool {
	return len(sig) == 64 &&
		sig[0]&0x80 == 0 &&
		!(sig[0] == 0 && sig[1]&0x80 == 0) &&
		sig[32]&0x80 == 0 &&
		!(sig[32] == 0 && sig[33]&0x80 == 0)
}
