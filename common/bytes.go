package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HexBytes is a byte slice that marshals to a plain hex string.
// Steem nodes render binary payloads without 0x prefix.
type HexBytes []byte

// ParseHexBytes decodes hex with or without 0x prefix
func ParseHexBytes(s string) (HexBytes, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string %q: %w", s, err)
	}
	return b, nil
}

// MustParseHexBytes panics on invalid hex
func MustParseHexBytes(s string) HexBytes {
	b, err := ParseHexBytes(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns hex encoding
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// MarshalJSON implements json.Marshaler
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (b *HexBytes) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	res, err := ParseHexBytes(s)
	if err != nil {
		return err
	}
	*b = res
	return nil
}
