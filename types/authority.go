package types

import (
	"encoding/json"
	"fmt"

	"github.com/anyswap/steem-client/crypto"
)

// Authority weighted multi-signature authority, pairs keep caller order
type Authority struct {
	WeightThreshold uint32        `json:"weight_threshold"`
	AccountAuths    []AccountAuth `json:"account_auths"`
	KeyAuths        []KeyAuth     `json:"key_auths"`
}

// AccountAuth [account, weight] pair
type AccountAuth struct {
	Account string
	Weight  uint16
}

// KeyAuth [key, weight] pair
type KeyAuth struct {
	Key    *crypto.PublicKey
	Weight uint16
}

// NewKeyAuthority single key authority with threshold 1
func NewKeyAuthority(key *crypto.PublicKey) *Authority {
	return &Authority{
		WeightThreshold: 1,
		AccountAuths:    []AccountAuth{},
		KeyAuths:        []KeyAuth{{Key: key, Weight: 1}},
	}
}

// MarshalJSON implements json.Marshaler
func (a AccountAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{a.Account, a.Weight})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *AccountAuth) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("account auth want 2 elements, got %v", len(pair))
	}
	if err := json.Unmarshal(pair[0], &a.Account); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &a.Weight)
}

// MarshalJSON implements json.Marshaler
func (k KeyAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{k.Key, k.Weight})
}

// UnmarshalJSON implements json.Unmarshaler
func (k *KeyAuth) UnmarshalJSON(input []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(input, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("key auth want 2 elements, got %v", len(pair))
	}
	k.Key = new(crypto.PublicKey)
	if err := json.Unmarshal(pair[0], k.Key); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &k.Weight)
}
