package attribute

import "encoding/xml"

const nsXSI = "http://www.w3.org/2001/XMLSchema-instance"

// Wire is a single entry of a typed attribute list as it travels on the wire
type Wire struct {
	Name  string `xml:"attrName"`
	Type  string `xml:"attrType,omitempty"`
	Value string `xml:"attrValue"`
	// Nil marks an absent value, written as xsi:nil="true"
	Nil bool `xml:"-"`
}

type nilAttrValue struct {
	XMLNS string `xml:"xmlns:xsi,attr"`
	Nil   string `xml:"xsi:nil,attr"`
}

type nilWire struct {
	Name  string       `xml:"attrName"`
	Type  string       `xml:"attrType,omitempty"`
	Value nilAttrValue `xml:"attrValue"`
}

// MarshalXML writes attrValue as xsi:nil when Nil is set
func (w Wire) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if !w.Nil {
		type plain Wire
		return e.EncodeElement(plain(w), start)
	}
	return e.EncodeElement(nilWire{
		Name:  w.Name,
		Type:  w.Type,
		Value: nilAttrValue{XMLNS: nsXSI, Nil: "true"},
	}, start)
}

// Encode converts m into a wire attribute list in insertion order.
// Booleans are tagged "boolean" with value "0" or "1"; every other value is
// sent untagged in its string form.
func Encode(m *Map) []Wire {
	out := make([]Wire, 0, m.Len())
	m.Range(func(name string, v Value) bool {
		w := Wire{Name: name, Value: v.String()}
		switch v.Kind() {
		case Boolean:
			w.Type = TypeBoolean
		case Null:
			w.Nil = true
		}
		out = append(out, w)
		return true
	})
	return out
}

// Decode flattens a wire attribute list. Values tagged integer, string,
// boolean or float are coerced to that type; anything else is kept as the
// raw string. When a name repeats, the last occurrence wins.
func Decode(list []Wire) *Map {
	out := NewMap()
	for _, w := range list {
		out.Set(w.Name, DecodeValue(w))
	}
	return out
}

// DecodeValue converts one wire entry to a Value
func DecodeValue(w Wire) Value {
	if isRecognized(w.Type) {
		return coerce(w.Value, w.Type)
	}
	if w.Nil {
		return NullValue()
	}
	return StringValue(w.Value)
}
