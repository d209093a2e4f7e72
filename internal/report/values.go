package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var nullLiteral = []byte("null")

// Number is a nullable numeric leaf.
//
// It accepts JSON numbers and numeric strings. null, an empty string, a
// missing key and any value that is not a number all leave Valid false, so a
// single odd sensor reading never fails the whole report.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, nullLiteral) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

// Any returns the value, or nil when the leaf was null or absent.
func (n Number) Any() any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// Flag is a nullable boolean leaf. The API is not consistent about booleans,
// so true/false, 0/1 and their string forms are all accepted. Anything else
// leaves Valid false.
type Flag struct {
	Value bool
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, nullLiteral) {
		return nil
	}

	raw := strings.Trim(string(data), `"`)
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		f.Value, f.Valid = true, true
	case "false", "0":
		f.Value, f.Valid = false, true
	}
	return nil
}

// Any returns the value, or nil when the leaf was null or absent.
func (f Flag) Any() any {
	if !f.Valid {
		return nil
	}
	return f.Value
}

// Text is a nullable string leaf. Numbers are kept in their JSON spelling.
type Text struct {
	Value string
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, nullLiteral) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Value, t.Valid = s, true
		return nil
	}

	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("invalid text %s", data)
	}
	t.Value, t.Valid = string(data), true
	return nil
}

// Any returns the value, or nil when the leaf was null or absent.
func (t Text) Any() any {
	if !t.Valid {
		return nil
	}
	return t.Value
}

// valuer is implemented by every leaf type.
type valuer interface {
	Any() any
}
