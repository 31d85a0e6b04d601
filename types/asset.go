package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// AssetSymbol chain asset symbol
type AssetSymbol string

// asset symbols
const (
	STEEM AssetSymbol = "STEEM"
	VESTS AssetSymbol = "VESTS"
	SBD   AssetSymbol = "SBD"
	TESTS AssetSymbol = "TESTS"
	TBD   AssetSymbol = "TBD"
)

var assetPrecisions = map[AssetSymbol]int32{
	STEEM: 3,
	VESTS: 6,
	SBD:   3,
	TESTS: 3,
	TBD:   3,
}

// asset numeric identifiers used by appbase apis
var (
	naiSymbols = map[string]AssetSymbol{
		"@@000000021": STEEM,
		"@@000000013": SBD,
		"@@000000037": VESTS,
	}
	testnetNaiSymbols = map[string]AssetSymbol{
		"@@000000021": TESTS,
		"@@000000013": TBD,
		"@@000000037": VESTS,
	}

	testnetSymbols int32 // atomic
)

// UseTestnetSymbols makes nai amounts decode to TESTS and TBD
// instead of STEEM and SBD
func UseTestnetSymbols(enabled bool) {
	var v int32
	if enabled {
		v = 1
	}
	atomic.StoreInt32(&testnetSymbols, v)
}

func symbolOfNai(nai string) (AssetSymbol, bool) {
	symbols := naiSymbols
	if atomic.LoadInt32(&testnetSymbols) == 1 {
		symbols = testnetNaiSymbols
	}
	symbol, ok := symbols[nai]
	return symbol, ok
}

// Precision returns decimal places of symbol
func (s AssetSymbol) Precision() (int32, error) {
	precision, ok := assetPrecisions[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAssetSymbol, string(s))
	}
	return precision, nil
}

// Asset an amount of a symbol, immutable
type Asset struct {
	Amount decimal.Decimal
	Symbol AssetSymbol
}

// NewAsset checks symbol and creates an asset
func NewAsset(amount decimal.Decimal, symbol AssetSymbol) (Asset, error) {
	if _, err := symbol.Precision(); err != nil {
		return Asset{}, err
	}
	return Asset{Amount: amount, Symbol: symbol}, nil
}

// ParseAsset parses "1.000 STEEM" form
func ParseAsset(s string) (Asset, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAssetAmount, s)
	}
	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAssetAmount, parts[0])
	}
	return NewAsset(amount, AssetSymbol(parts[1]))
}

// MustParseAsset panics on error
func MustParseAsset(s string) Asset {
	asset, err := ParseAsset(s)
	if err != nil {
		panic(err)
	}
	return asset
}

// Precision returns decimal places of asset
func (a Asset) Precision() int32 {
	precision, _ := a.Symbol.Precision()
	return precision
}

// String renders amount at symbol precision
func (a Asset) String() string {
	return a.Amount.StringFixed(a.Precision()) + " " + string(a.Symbol)
}

// ScaledAmount returns round(amount * 10^precision)
func (a Asset) ScaledAmount() (int64, error) {
	if _, err := a.Symbol.Precision(); err != nil {
		return 0, err
	}
	scaled := a.Amount.Shift(a.Precision()).Round(0)
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidAssetAmount, a)
	}
	return scaled.IntPart(), nil
}

func (a Asset) checkSymbol(b Asset) error {
	if a.Symbol != b.Symbol {
		return fmt.Errorf("%w: %v and %v", ErrAssetSymbolMismatch, a.Symbol, b.Symbol)
	}
	return nil
}

// Add returns a + b
func (a Asset) Add(b Asset) (Asset, error) {
	if err := a.checkSymbol(b); err != nil {
		return Asset{}, err
	}
	return Asset{Amount: a.Amount.Add(b.Amount), Symbol: a.Symbol}, nil
}

// Sub returns a - b
func (a Asset) Sub(b Asset) (Asset, error) {
	if err := a.checkSymbol(b); err != nil {
		return Asset{}, err
	}
	return Asset{Amount: a.Amount.Sub(b.Amount), Symbol: a.Symbol}, nil
}

// Mul returns a * factor
func (a Asset) Mul(factor decimal.Decimal) Asset {
	return Asset{Amount: a.Amount.Mul(factor), Symbol: a.Symbol}
}

// Div returns a / divisor rounded to symbol precision
func (a Asset) Div(divisor decimal.Decimal) (Asset, error) {
	if divisor.IsZero() {
		return Asset{}, ErrDivisionByZero
	}
	return Asset{Amount: a.Amount.DivRound(divisor, a.Precision()), Symbol: a.Symbol}, nil
}

// Neg returns -a
func (a Asset) Neg() Asset {
	return Asset{Amount: a.Amount.Neg(), Symbol: a.Symbol}
}

// Cmp compares amounts of the same symbol
func (a Asset) Cmp(b Asset) (int, error) {
	if err := a.checkSymbol(b); err != nil {
		return 0, err
	}
	return a.Amount.Cmp(b.Amount), nil
}

// IsZero amount is zero
func (a Asset) IsZero() bool {
	return a.Amount.IsZero()
}

// MarshalJSON implements json.Marshaler
func (a Asset) MarshalJSON() ([]byte, error) {
	if _, err := a.Symbol.Precision(); err != nil {
		return nil, err
	}
	return json.Marshal(a.String())
}

type naiAsset struct {
	Amount    string `json:"amount"`
	Precision int32  `json:"precision"`
	Nai       string `json:"nai"`
}

// UnmarshalJSON accepts "1.000 STEEM" and {amount, precision, nai}
func (a *Asset) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err == nil {
		asset, err := ParseAsset(s)
		if err != nil {
			return err
		}
		*a = asset
		return nil
	}
	var nai naiAsset
	if err := json.Unmarshal(input, &nai); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAssetAmount, input)
	}
	symbol, ok := symbolOfNai(nai.Nai)
	if !ok {
		return fmt.Errorf("%w: nai %q", ErrUnknownAssetSymbol, nai.Nai)
	}
	amount, err := decimal.NewFromString(nai.Amount)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAssetAmount, nai.Amount)
	}
	*a = Asset{Amount: amount.Shift(-nai.Precision), Symbol: symbol}
	return nil
}
