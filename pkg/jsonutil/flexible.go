package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleStringValue converts a json.RawMessage to a string. Identifiers and claims from
// the upstream arrive as strings or numbers depending on the serializer. Returns empty
// string for null/empty.
func FlexibleStringValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal json.Number
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if i, err := numVal.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := numVal.Float64(); err == nil {
			return fmt.Sprintf("%g", f)
		}
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return strconv.FormatBool(boolVal)
	}

	return string(raw)
}

// FlexibleInt64 parses a string or number into an int64.
// Anything that does not hold a whole number yields 0.
func FlexibleInt64(raw json.RawMessage) int64 {
	s := strings.TrimSpace(FlexibleStringValue(raw))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FlexibleID is an identifier that may be encoded as a JSON string or number.
// It always marshals back as a string.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	*id = FlexibleID(FlexibleStringValue(data))
	return nil
}

// String returns the identifier as text.
func (id FlexibleID) String() string {
	return string(id)
}

// Int64 returns the identifier as a number, or 0 when it is not numeric.
func (id FlexibleID) Int64() int64 {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
