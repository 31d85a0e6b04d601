package types

import (
	"fmt"
	"sort"

	"github.com/anyswap/steem-client/crypto"
)

// WitnessPropKey known witness_set_properties keys
type WitnessPropKey int

// witness property keys
const (
	AccountCreationFeeProp WitnessPropKey = iota
	AccountSubsidyBudgetProp
	AccountSubsidyDecayProp
	KeyProp
	MaximumBlockSizeProp
	NewSigningKeyProp
	SBDExchangeRateProp
	SBDInterestRateProp
	URLProp
)

var witnessPropNames = [...]string{
	AccountCreationFeeProp:   "account_creation_fee",
	AccountSubsidyBudgetProp: "account_subsidy_budget",
	AccountSubsidyDecayProp:  "account_subsidy_decay",
	KeyProp:                  "key",
	MaximumBlockSizeProp:     "maximum_block_size",
	NewSigningKeyProp:        "new_signing_key",
	SBDExchangeRateProp:      "sbd_exchange_rate",
	SBDInterestRateProp:      "sbd_interest_rate",
	URLProp:                  "url",
}

// String returns property name
func (k WitnessPropKey) String() string {
	if k >= 0 && int(k) < len(witnessPropNames) {
		return witnessPropNames[k]
	}
	return fmt.Sprintf("witness_prop_%d", int(k))
}

// ParseWitnessPropKey returns key of property name
func ParseWitnessPropKey(name string) (WitnessPropKey, error) {
	for i, propName := range witnessPropNames {
		if propName == name {
			return WitnessPropKey(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWitnessProp, name)
}

// WitnessProps typed witness_set_properties values, nil fields are omitted.
// Key is the current signing key and is always required.
type WitnessProps struct {
	AccountCreationFee   *Asset
	AccountSubsidyBudget *uint32
	AccountSubsidyDecay  *uint32
	Key                  *crypto.PublicKey
	MaximumBlockSize     *uint32
	NewSigningKey        *crypto.PublicKey
	SBDExchangeRate      *Price
	SBDInterestRate      *uint16
	URL                  *string
}

// DisableSigningKey sets the null key as new signing key
func (p *WitnessProps) DisableSigningKey() {
	p.NewSigningKey = crypto.NullPublicKey(crypto.DefaultAddressPrefix)
}

// Keys returns keys of set properties sorted by name
func (p *WitnessProps) Keys() []WitnessPropKey {
	set := map[WitnessPropKey]bool{
		AccountCreationFeeProp:   p.AccountCreationFee != nil,
		AccountSubsidyBudgetProp: p.AccountSubsidyBudget != nil,
		AccountSubsidyDecayProp:  p.AccountSubsidyDecay != nil,
		KeyProp:                  p.Key != nil,
		MaximumBlockSizeProp:     p.MaximumBlockSize != nil,
		NewSigningKeyProp:        p.NewSigningKey != nil,
		SBDExchangeRateProp:      p.SBDExchangeRate != nil,
		SBDInterestRateProp:      p.SBDInterestRate != nil,
		URLProp:                  p.URL != nil,
	}
	keys := make([]WitnessPropKey, 0, len(set))
	for key, ok := range set {
		if ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
