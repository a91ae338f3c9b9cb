package attribute

import (
	"encoding/json"
	"sort"
)

// Map is an insertion-ordered mapping of attribute names to values.
// Setting a name that already exists replaces its value and keeps its
// position. The zero value is ready to use.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty map
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// FromNative builds a Map from a Go map. Go maps are unordered, so names
// are inserted in sorted order to keep encoding stable.
func FromNative(m map[string]any) *Map {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := NewMap()
	for _, name := range names {
		out.Set(name, ValueOf(m[name]))
	}
	return out
}

// Set stores v under name
func (m *Map) Set(name string, v Value) *Map {
	if m.vals == nil {
		m.vals = make(map[string]Value)
	}
	if _, exists := m.vals[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = v
	return m
}

// SetAny stores a native Go value under name
func (m *Map) SetAny(name string, v any) *Map {
	return m.Set(name, ValueOf(v))
}

// Get returns the value stored under name
func (m *Map) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.vals[name]
	return v, ok
}

// Delete removes name
func (m *Map) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.vals[name]; !ok {
		return
	}
	delete(m.vals, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the names in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in order until fn returns false
func (m *Map) Range(fn func(name string, v Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// Native returns a plain Go map of native values
func (m *Map) Native() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(name string, v Value) bool {
		out[name] = v.Interface()
		return true
	})
	return out
}

// MarshalJSON encodes the map as a JSON object of native values
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Native())
}
