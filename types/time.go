package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout timestamp layout used by nodes, always UTC without zone suffix
const TimeLayout = "2006-01-02T15:04:05"

// Time second precision UTC timestamp
type Time struct {
	time.Time
}

// NewTime truncates t to seconds in UTC
func NewTime(t time.Time) Time {
	return Time{t.UTC().Truncate(time.Second)}
}

// ParseTime parses node timestamps, a trailing Z is accepted
func ParseTime(s string) (Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSuffix(s, "Z"))
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return Time{t}, nil
}

// MustParseTime panics on error
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Add returns t + d
func (t Time) Add(d time.Duration) Time {
	return NewTime(t.Time.Add(d))
}

// String renders node timestamp
func (t Time) String() string {
	return t.UTC().Format(TimeLayout)
}

// MarshalJSON implements json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Time) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
