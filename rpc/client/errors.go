package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// transport errors
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrClientClosed     = errors.New("client closed")
)

// TimeoutError a call got no response in time
type TimeoutError struct {
	ID      uint64
	Method  string
	Timeout time.Duration
}

// Error implements error
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request %v (%v) timed out after %v", e.ID, e.Method, e.Timeout)
}

// MessageError a received message is not a valid envelope
type MessageError struct {
	Data  []byte
	Cause error
}

// Error implements error
func (e *MessageError) Error() string {
	return fmt.Sprintf("invalid message %q: %v", truncate(e.Data, 256), e.Cause)
}

// Unwrap returns the cause
func (e *MessageError) Unwrap() error {
	return e.Cause
}

// RPCError error returned by the node
type RPCError struct {
	Code    int
	Name    string
	Message string
	Info    json.RawMessage
}

// Error implements error
func (e *RPCError) Error() string {
	return fmt.Sprintf("%v: %v", e.Name, e.Message)
}

type jsonError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type errorData struct {
	Code  int              `json:"code"`
	Name  string           `json:"name"`
	Stack []errorDataStack `json:"stack"`
}

type errorDataStack struct {
	Format string                     `json:"format"`
	Data   map[string]json.RawMessage `json:"data"`
}

var placeholderRegexp = regexp.MustCompile(`\$\{([a-zA-Z_]+)\}`)

func newRPCError(e *jsonError) *RPCError {
	rpcErr := &RPCError{
		Code:    e.Code,
		Name:    "RPCError",
		Message: e.Message,
		Info:    e.Data,
	}
	var data errorData
	if len(e.Data) == 0 || json.Unmarshal(e.Data, &data) != nil {
		return rpcErr
	}
	if data.Name != "" {
		rpcErr.Name = data.Name
	}
	if len(data.Stack) > 0 && data.Stack[0].Format != "" {
		rpcErr.Message = formatAssertion(data.Stack[0].Format, data.Stack[0].Data)
	}
	return rpcErr
}

// formatAssertion replaces ${key} with values of data,
// values not used by the format are appended as key=value
func formatAssertion(format string, data map[string]json.RawMessage) string {
	used := make(map[string]bool)
	message := placeholderRegexp.ReplaceAllStringFunc(format, func(match string) string {
		key := match[2 : len(match)-1]
		value, ok := data[key]
		if !ok {
			return match
		}
		used[key] = true
		var s string
		if json.Unmarshal(value, &s) == nil {
			return s
		}
		return string(value)
	})
	keys := make([]string, 0, len(data))
	for key := range data {
		if !used[key] {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return message
	}
	sort.Strings(keys)
	extra := make([]string, len(keys))
	for i, key := range keys {
		extra[i] = key + "=" + string(data[key])
	}
	return message + " " + strings.Join(extra, " ")
}

func truncate(data []byte, size int) string {
	if len(data) <= size {
		return string(data)
	}
	return string(data[:size]) + "..."
}
