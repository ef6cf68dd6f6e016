// Package types provides the payload and request types exchanged with the ATS backend.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Score is an ATS score on the 0-10 scale.
// The backend sends report scores as a one-element array ([8.0]) and match
// record scores as a plain number, so both forms decode into Score.
type Score float64

// UnmarshalJSON accepts a number, a numeric string, an array (first element) or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = 0
		return nil
	}

	switch trimmed[0] {
	case '[':
		var values []Score
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("invalid score array: %w", err)
		}
		if len(values) == 0 {
			*s = 0
			return nil
		}
		*s = values[0]
		return nil
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("invalid score string: %w", err)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*s = 0
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", raw, err)
		}
		*s = Score(value)
		return nil
	default:
		var value float64
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return fmt.Errorf("invalid score: %w", err)
		}
		*s = Score(value)
		return nil
	}
}

// emptyScore reports whether raw carries no score at all.
func emptyScore(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return true
	case trimmed[0] == '[':
		var values []json.RawMessage
		return json.Unmarshal(trimmed, &values) == nil && len(values) == 0
	case trimmed[0] == '"':
		var raw string
		return json.Unmarshal(trimmed, &raw) == nil && strings.TrimSpace(raw) == ""
	default:
		return false
	}
}

// Float64 returns the score as a float64.
func (s Score) Float64() float64 {
	return float64(s)
}

// String formats the score without trailing zeros ("8", "7.5").
func (s Score) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}

// StringList decodes a JSON string, an array of strings, or null into a slice.
// Non-string array elements keep their raw JSON text.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	switch trimmed[0] {
	case '"':
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		if strings.TrimSpace(single) == "" {
			*l = nil
			return nil
		}
		*l = StringList{single}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		out := make(StringList, 0, len(raw))
		for _, elem := range raw {
			var str string
			if err := json.Unmarshal(elem, &str); err == nil {
				out = append(out, str)
				continue
			}
			out = append(out, string(bytes.TrimSpace(elem)))
		}
		*l = out
		return nil
	default:
		*l = StringList{string(trimmed)}
		return nil
	}
}

// First returns the first element, or fallback when the list is empty or blank.
func (l StringList) First(fallback string) string {
	if len(l) == 0 || strings.TrimSpace(l[0]) == "" {
		return fallback
	}
	return l[0]
}
