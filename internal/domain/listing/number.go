package listing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a numeric field that tolerates the shapes real data sets carry:
// JSON numbers, numeric strings with thousands separators, null and garbage.
// It distinguishes three states: absent, present and parseable, present but malformed.
type Number struct {
	value   float64
	present bool
	valid   bool
}

// NumberOf returns a present, valid Number.
func NumberOf(v float64) Number {
	return Number{value: v, present: true, valid: true}
}

// ParseNumber coerces s into a Number. Empty input is absent; anything that
// does not parse after stripping commas and spaces is present but invalid.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	cleaned := strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), " ", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Number{present: true}
	}
	return NumberOf(v)
}

// IsSet reports whether the field was supplied at all.
func (n Number) IsSet() bool { return n.present }

// Float returns the numeric value and whether it is usable.
func (n Number) Float() (float64, bool) { return n.value, n.valid }

// UnmarshalJSON never fails: malformed values become present-but-invalid.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = Number{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Number{present: true}
			return nil
		}
		*n = ParseNumber(s)
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			*n = Number{present: true}
			return nil
		}
		*n = NumberOf(v)
	}
	return nil
}

// MarshalJSON writes the value, or null when absent or malformed.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.value, 'f', -1, 64), nil
}
