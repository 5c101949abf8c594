package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// Value is a flag value that can be a string, a boolean or a number. It is
// used where one payload mixes flags of different types, e.g. AllFlagStates[Value].
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	b    bool
	num  float64
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue wraps n.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// Kind returns the held variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether no value is held.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string variant.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBool returns the boolean variant.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric variant.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// String formats the held value the way it appears on the wire, without quotes.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return "null"
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return codec.SerializeBytes(v.str)
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON dispatches on the first byte of the literal. Objects and
// arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty flag value")
	}
	switch c := data[0]; {
	case c == 'n':
		*v = Value{}
		return nil
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case c == 't' || c == 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case c == '-' || (c >= '0' && c <= '9'):
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
	default:
		return fmt.Errorf("unsupported flag value %s", data)
	}
	return nil
}
