package serializer

import (
	"errors"
	"fmt"
)

// encoding errors
var (
	ErrUnknownOperation   = errors.New("unknown operation")
	ErrNilOperation       = errors.New("operation without payload")
	ErrNonEmptyExtensions = errors.New("future extensions must be empty")
	ErrMissingField       = errors.New("missing required field")
	ErrVarintOverflow     = errors.New("varint overflow")
	ErrAssetSymbolTooLong = errors.New("asset symbol longer than 7 bytes")
	ErrMissingSigningKey  = errors.New("witness props need the current signing key")
)

// SerializationError a value could not be canonically encoded
type SerializationError struct {
	Op    string
	Cause error
}

// Error implements error
func (e *SerializationError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("serialization error: %v", e.Cause)
	}
	return fmt.Sprintf("serialization error in %v: %v", e.Op, e.Cause)
}

// Unwrap returns the cause
func (e *SerializationError) Unwrap() error {
	return e.Cause
}

func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var serr *SerializationError
	if errors.As(err, &serr) {
		return err
	}
	return &SerializationError{Op: op, Cause: err}
}
