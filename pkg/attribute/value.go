// Package attribute converts between flat name/value maps and the typed
// attribute lists used on the wire.
package attribute

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags the native type held by a Value
type Kind uint8

const (
	Null Kind = iota
	String
	Integer
	Boolean
	Float
)

// Wire type tags recognized when decoding
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeFloat   = "float"
)

func (k Kind) String() string {
	switch k {
	case String:
		return TypeString
	case Integer:
		return TypeInteger
	case Boolean:
		return TypeBoolean
	case Float:
		return TypeFloat
	default:
		return "null"
	}
}

// Value is a tagged union of the attribute types the service understands
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// NullValue returns a value without content
func NullValue() Value { return Value{} }

// StringValue wraps s
func StringValue(s string) Value { return Value{kind: String, s: s} }

// IntValue wraps i
func IntValue(i int64) Value { return Value{kind: Integer, i: i} }

// BoolValue wraps b
func BoolValue(b bool) Value { return Value{kind: Boolean, b: b} }

// FloatValue wraps f
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// ValueOf converts a native Go value. Unsupported types are rendered with
// fmt and stored as strings.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case Value:
		return x
	case string:
		return StringValue(x)
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint64:
		return uintValue(x)
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case fmt.Stringer:
		return StringValue(x.String())
	default:
		return StringValue(fmt.Sprint(x))
	}
}

// uintValue keeps values beyond the int64 range as their decimal text
func uintValue(x uint64) Value {
	if x > math.MaxInt64 {
		return StringValue(strconv.FormatUint(x, 10))
	}
	return IntValue(int64(x))
}

// Kind returns the type tag
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no content
func (v Value) IsNull() bool { return v.kind == Null }

// Str returns the string payload when v is a String
func (v Value) Str() (string, bool) { return v.s, v.kind == String }

// Int returns the integer payload when v is an Integer
func (v Value) Int() (int64, bool) { return v.i, v.kind == Integer }

// Bool returns the boolean payload when v is a Boolean
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Boolean }

// Float returns the float payload when v is a Float
func (v Value) Float() (float64, bool) { return v.f, v.kind == Float }

// Interface returns the native Go value (nil, string, int64, bool or float64)
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		return v.i
	case Boolean:
		return v.b
	case Float:
		return v.f
	default:
		return nil
	}
}

// String renders v the way it travels on the wire. Booleans use "0"/"1".
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Boolean:
		if v.b {
			return "1"
		}
		return "0"
	case Float:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal compares kind and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case String:
		return v.s == o.s
	case Integer:
		return v.i == o.i
	case Boolean:
		return v.b == o.b
	case Float:
		return v.f == o.f
	default:
		return true
	}
}

var (
	intPrefix   = regexp.MustCompile(`^\s*[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// coerce converts a wire string to the given type tag. Conversion is loose:
// numbers are read from the leading numeric prefix and anything unreadable
// becomes zero. Booleans are false only for "" and "0".
func coerce(raw string, tag string) Value {
	switch tag {
	case TypeString:
		return StringValue(raw)
	case TypeInteger:
		return IntValue(parseIntPrefix(raw))
	case TypeFloat:
		return FloatValue(parseFloatPrefix(raw))
	case TypeBoolean:
		return BoolValue(raw != "" && raw != "0")
	default:
		return StringValue(raw)
	}
}

func parseIntPrefix(raw string) int64 {
	m := intPrefix.FindString(raw)
	if m == "" {
		return 0
	}
	m = strings.TrimSpace(m)
	i, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		if strings.HasPrefix(m, "-") {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return i
}

func parseFloatPrefix(raw string) float64 {
	m := strings.TrimSpace(floatPrefix.FindString(raw))
	if m == "" {
		return 0
	}
	// out of range still yields ±Inf
	f, _ := strconv.ParseFloat(m, 64)
	return f
}

// isRecognized reports whether tag is one of the four coercible types
func isRecognized(tag string) bool {
	switch tag {
	case TypeString, TypeInteger, TypeBoolean, TypeFloat:
		return true
	}
	return false
}
