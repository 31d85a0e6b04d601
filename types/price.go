package types

import (
	"fmt"
)

// Price exchange rate between two assets
type Price struct {
	Base  Asset `json:"base"`
	Quote Asset `json:"quote"`
}

// NewPrice requires different symbols and non zero amounts
func NewPrice(base, quote Asset) (Price, error) {
	if base.Symbol == quote.Symbol {
		return Price{}, fmt.Errorf("%w: same symbol %v", ErrInvalidPrice, base.Symbol)
	}
	if base.IsZero() || quote.IsZero() {
		return Price{}, fmt.Errorf("%w: zero amount in %v:%v", ErrInvalidPrice, base, quote)
	}
	return Price{Base: base, Quote: quote}, nil
}

// Convert converts asset of either side into the other symbol,
// the result is truncated to the target precision
func (p Price) Convert(asset Asset) (Asset, error) {
	var from, to Asset
	switch asset.Symbol {
	case p.Base.Symbol:
		from, to = p.Base, p.Quote
	case p.Quote.Symbol:
		from, to = p.Quote, p.Base
	default:
		return Asset{}, fmt.Errorf("%w: can not convert %v with %v", ErrAssetSymbolMismatch, asset, p)
	}
	if from.IsZero() {
		return Asset{}, ErrDivisionByZero
	}
	amount := asset.Amount.Mul(to.Amount).DivRound(from.Amount, to.Precision()+8).Truncate(to.Precision())
	return Asset{Amount: amount, Symbol: to.Symbol}, nil
}

// String returns base:quote
func (p Price) String() string {
	return p.Base.String() + ":" + p.Quote.String()
}
