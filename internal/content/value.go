// Package content holds the data model shared by every build stage: raw
// documents, their parsed metadata, headings, and the enriched records handed
// to the corpus-wide builders.
package content

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Value is a single metadata value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
	m    Metadata
}

func Null() Value                { return Value{} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Number(n float64) Value     { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func List(items ...string) Value { return Value{kind: KindList, list: append([]string{}, items...)} }

// Map wraps a nested section. A nil m becomes an empty section.
func Map(m Metadata) Value {
	if m == nil {
		m = Metadata{}
	}
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string variant.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the number variant.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the boolean variant.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// List returns a copy of the list variant.
func (v Value) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string{}, v.list...), true
}

// Map returns the nested section.
func (v Value) Map() (Metadata, bool) { return v.m, v.kind == KindMap }

// Append returns v with item added. Non-list values are replaced by a fresh
// list, matching how a block array overrides an opened section.
func (v Value) Append(item string) Value {
	if v.kind != KindList {
		return List(item)
	}
	out := make([]string, len(v.list), len(v.list)+1)
	copy(out, v.list)
	return Value{kind: KindList, list: append(out, item)}
}

// String renders scalars in their source form. Lists are comma joined and
// sections render as an empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ", ")
	}
	return ""
}

// Interface converts v to plain Go values as produced by encoding/json:
// string, float64, bool, nil, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, s := range v.list {
			out[i] = s
		}
		return out
	case KindMap:
		return v.m.Interface()
	}
	return nil
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(o.m)
	}
	return true
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Metadata maps header keys to values. Unknown keys are kept as parsed.
type Metadata map[string]Value

// Get returns the value for key, or null.
func (m Metadata) Get(key string) Value {
	if m == nil {
		return Null()
	}
	return m[key]
}

// Has reports whether key was present in the header.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Str returns the trimmed string form of a scalar key. Lists, sections and
// null yield "".
func (m Metadata) Str(key string) string {
	v := m.Get(key)
	switch v.Kind() {
	case KindString, KindNumber, KindBool:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// Strings returns a list key. A plain string becomes a one element list.
func (m Metadata) Strings(key string) []string {
	v := m.Get(key)
	if items, ok := v.List(); ok {
		return items
	}
	if s, ok := v.Str(); ok && strings.TrimSpace(s) != "" {
		return []string{strings.TrimSpace(s)}
	}
	return nil
}

func (m Metadata) Interface() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

func (m Metadata) Equal(o Metadata) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
