package types

import "errors"

// data model errors
var (
	ErrUnknownAssetSymbol   = errors.New("unknown asset symbol")
	ErrInvalidAssetAmount   = errors.New("invalid asset amount")
	ErrAssetSymbolMismatch  = errors.New("asset symbol mismatch")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrUnknownWitnessProp   = errors.New("unknown witness property")
	ErrUnknownExtensionType = errors.New("unknown extension type")
)
