package serializer

import (
	"fmt"

	"github.com/anyswap/steem-client/types"
)

// SerializeWitnessProps encodes set properties sorted by name,
// each value as its own canonical bytes
func SerializeWitnessProps(props *types.WitnessProps) ([]types.WitnessProp, error) {
	if props == nil || props.Key == nil {
		return nil, &SerializationError{Op: "witness_set_properties", Cause: ErrMissingSigningKey}
	}
	keys := props.Keys()
	result := make([]types.WitnessProp, 0, len(keys))
	for _, key := range keys {
		value, err := serializeWitnessProp(props, key)
		if err != nil {
			return nil, &SerializationError{Op: "witness_set_properties." + key.String(), Cause: err}
		}
		result = append(result, types.WitnessProp{Key: key.String(), Value: value})
	}
	return result, nil
}

func serializeWitnessProp(props *types.WitnessProps, key types.WitnessPropKey) ([]byte, error) {
	b := NewBuffer()
	switch key {
	case types.AccountCreationFeeProp:
		b.WriteAsset(*props.AccountCreationFee)
	case types.AccountSubsidyBudgetProp:
		b.WriteUint32(*props.AccountSubsidyBudget)
	case types.AccountSubsidyDecayProp:
		b.WriteUint32(*props.AccountSubsidyDecay)
	case types.KeyProp:
		b.WritePublicKey(props.Key)
	case types.MaximumBlockSizeProp:
		b.WriteUint32(*props.MaximumBlockSize)
	case types.NewSigningKeyProp:
		b.WritePublicKey(props.NewSigningKey)
	case types.SBDExchangeRateProp:
		b.WritePrice(*props.SBDExchangeRate)
	case types.SBDInterestRateProp:
		b.WriteUint16(*props.SBDInterestRate)
	case types.URLProp:
		b.WriteString(*props.URL)
	default:
		return nil, fmt.Errorf("%w: %v", types.ErrUnknownWitnessProp, key)
	}
	return b.Bytes()
}
