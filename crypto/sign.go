package crypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// Sign signs a 32 bytes digest. Signing is repeated with an increasing
// attempt counter mixed into the nonce until the signature is canonical.
func (k *PrivateKey) Sign(digest []byte) (*Signature, error) {
	if len(digest) != 32 {
		return nil, ErrInvalidDigest
	}
	privKey := k.key.Serialize()
	defer zeroBytes(privKey)

	for attempt := 1; attempt <= maxSignAttempts; attempt++ {
		extra := Sha256(digest, []byte{byte(attempt)})
		for iteration := uint32(0); ; iteration++ {
			nonce := btcec.NonceRFC6979(privKey, digest, extra, nil, iteration)
			sig, ok := signWithNonce(&k.key.Key, nonce, digest)
			nonce.Zero()
			if !ok {
				continue
			}
			if sig.IsCanonical() {
				return sig, nil
			}
			break
		}
	}
	return nil, ErrTooManySignAttempt
}

// signWithNonce computes a low-S ecdsa signature and its recovery id.
// It fails when r or s is zero and a new nonce is required.
func signWithNonce(privKey, nonce *btcec.ModNScalar, digest []byte) (*Signature, bool) {
	var kG btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(nonce, &kG)
	kG.ToAffine()

	var xBytes [32]byte
	kG.X.PutBytes(&xBytes)
	var r btcec.ModNScalar
	overflow := r.SetBytes(&xBytes)
	if r.IsZero() {
		return nil, false
	}
	recovery := byte(overflow<<1) | byte(kG.Y.IsOddBit())

	var e btcec.ModNScalar
	e.SetByteSlice(digest)
	kinv := new(btcec.ModNScalar).InverseValNonConst(nonce)
	s := new(btcec.ModNScalar).Mul2(privKey, &r).Add(&e).Mul(kinv)
	if s.IsZero() {
		return nil, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
		recovery ^= 1
	}

	sig := &Signature{Recovery: recovery}
	r.PutBytesUnchecked(sig.Data[:32])
	s.PutBytesUnchecked(sig.Data[32:])
	return sig, true
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
