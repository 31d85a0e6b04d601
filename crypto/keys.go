package crypto

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// DefaultAddressPrefix prefix of main network public keys
	DefaultAddressPrefix = "STM"
	// NetworkID leading byte of wif encoded private keys
	NetworkID byte = 0x80

	addressPrefixLength = 3
	privateKeyLength    = 32
	publicKeyLength     = 33
)

// KeyRole account authority role used in login key derivation
type KeyRole string

// key roles
const (
	RoleOwner   KeyRole = "owner"
	RoleActive  KeyRole = "active"
	RolePosting KeyRole = "posting"
	RoleMemo    KeyRole = "memo"
)

// PrivateKey secp256k1 private key
type PrivateKey struct {
	key *btcec.PrivateKey
}

// NewPrivateKey from 32 raw bytes
func NewPrivateKey(raw []byte) (*PrivateKey, error) {
	if len(raw) != privateKeyLength {
		return nil, ErrInvalidKeyLength
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow || scalar.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{key: btcec.PrivKeyFromScalar(&scalar)}, nil
}

// PrivateKeyFromWif decodes a wif encoded private key
func PrivateKeyFromWif(wif string) (*PrivateKey, error) {
	payload, err := decodeChecked(wif, doubleSha256Checksum)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	if payload[0] != NetworkID {
		return nil, fmt.Errorf("private key network id %#x: %w", payload[0], ErrInvalidNetworkID)
	}
	return NewPrivateKey(payload[1:])
}

// PrivateKeyFromSeed derives a key as sha256(seed)
func PrivateKeyFromSeed(seed string) *PrivateKey {
	key, _ := btcec.PrivKeyFromBytes(Sha256([]byte(seed)))
	return &PrivateKey{key: key}
}

// PrivateKeyFromLogin derives the role key of an account password
func PrivateKeyFromLogin(username, password string, role KeyRole) *PrivateKey {
	return PrivateKeyFromSeed(username + string(role) + password)
}

// GenerateRandomKey generates a new random private key
func GenerateRandomKey() (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// Wif returns the wif encoding of key
func (k *PrivateKey) Wif() string {
	payload := make([]byte, 0, 1+privateKeyLength)
	payload = append(payload, NetworkID)
	payload = append(payload, k.key.Serialize()...)
	return encodeChecked(payload, doubleSha256Checksum)
}

// PublicKey returns the public key with the default prefix
func (k *PrivateKey) PublicKey() *PublicKey {
	return k.PublicKeyWithPrefix(DefaultAddressPrefix)
}

// PublicKeyWithPrefix returns the public key with prefix
func (k *PrivateKey) PublicKeyWithPrefix(prefix string) *PublicKey {
	pub := &PublicKey{prefix: prefix}
	copy(pub.raw[:], k.key.PubKey().SerializeCompressed())
	return pub
}

// String never renders the full key
func (k *PrivateKey) String() string {
	wif := k.Wif()
	return "PrivateKey: " + wif[:6] + "..." + wif[len(wif)-6:]
}

// GoString keeps %#v from dumping key bytes
func (k *PrivateKey) GoString() string {
	return k.String()
}

// PublicKey compressed secp256k1 public key with a display prefix
type PublicKey struct {
	raw    [publicKeyLength]byte
	prefix string
}

// NewPublicKey from 33 compressed bytes, all zero bytes is the null key
func NewPublicKey(raw []byte, prefix string) (*PublicKey, error) {
	if len(raw) != publicKeyLength {
		return nil, ErrInvalidKeyLength
	}
	pub := &PublicKey{prefix: prefix}
	copy(pub.raw[:], raw)
	if pub.IsNull() {
		return pub, nil
	}
	if _, err := btcec.ParsePubKey(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

// NullPublicKey returns the all zero key
func NullPublicKey(prefix string) *PublicKey {
	return &PublicKey{prefix: prefix}
}

// PublicKeyFromString decodes prefix + base58(key ++ ripemd160(key)[:4])
func PublicKeyFromString(s string) (*PublicKey, error) {
	if len(s) <= addressPrefixLength {
		return nil, ErrInvalidPrefix
	}
	prefix := s[:addressPrefixLength]
	raw, err := decodeChecked(s[addressPrefixLength:], ripemd160Checksum)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return NewPublicKey(raw, prefix)
}

// MustPublicKeyFromString panics on error
func MustPublicKeyFromString(s string) *PublicKey {
	pub, err := PublicKeyFromString(s)
	if err != nil {
		panic(err)
	}
	return pub
}

// IsNull is all zero key
func (k *PublicKey) IsNull() bool {
	return k.raw == [publicKeyLength]byte{}
}

// Bytes returns the 33 compressed key bytes
func (k *PublicKey) Bytes() []byte {
	return append([]byte(nil), k.raw[:]...)
}

// Prefix returns the display prefix
func (k *PublicKey) Prefix() string {
	return k.prefix
}

// WithPrefix returns a copy using another display prefix
func (k *PublicKey) WithPrefix(prefix string) *PublicKey {
	return &PublicKey{raw: k.raw, prefix: prefix}
}

// Equal compares key material, prefix is ignored
func (k *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && bytes.Equal(k.raw[:], other.raw[:])
}

// String returns prefix + base58 encoded key
func (k *PublicKey) String() string {
	return k.prefix + encodeChecked(k.raw[:], ripemd160Checksum)
}

// Verify checks signature of 32 bytes digest
func (k *PublicKey) Verify(digest []byte, sig *Signature) bool {
	if len(digest) != 32 || sig == nil || k.IsNull() {
		return false
	}
	pub, err := btcec.ParsePubKey(k.raw[:])
	if err != nil {
		return false
	}
	return sig.ecdsa().Verify(digest, pub)
}

// MarshalText implements encoding.TextMarshaler
func (k *PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PublicKey) UnmarshalText(text []byte) error {
	pub, err := PublicKeyFromString(string(text))
	if err != nil {
		return err
	}
	*k = *pub
	return nil
}
