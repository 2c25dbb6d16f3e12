// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"sort"
	"strconv"
)

// Value is a compile-time constant which may be a member of an enum type. Literal terms implement Value.
type Value interface {
	// Key is a comparable representation of the constant, unique within its value type.
	Key() interface{}
	// ValueType is the invariant type of the constant.
	ValueType() Type
	String() string
}

// Enum type: an explicit finite set of constant values over a base type, `{#red, #green}`.
//
// Enums are used as key domains of records, sums and maps.
type Enum struct {
	Base   Type
	Values []Value
}

func (t *Enum) Kind() Kind { return Star }

// Contains reports whether the enum includes a value with the given key.
func (t *Enum) Contains(key interface{}) bool {
	for _, v := range t.Values {
		if v.Key() == key {
			return true
		}
	}
	return false
}

// Keys returns the keys of the enum's values.
func (t *Enum) Keys() []interface{} {
	keys := make([]interface{}, len(t.Values))
	for i, v := range t.Values {
		keys[i] = v.Key()
	}
	return keys
}

// Extent is the implicit enum of integers `0..Size-1`, the index domain of a fixed-size collection.
type Extent struct {
	Size int
}

func (t *Extent) Kind() Kind { return Star }

// Contains reports whether key is an integer within the extent.
func (t *Extent) Contains(key interface{}) bool {
	i, ok := key.(int32)
	return ok && i >= 0 && int(i) < t.Size
}

// Keys returns the integer keys `0..Size-1`.
func (t *Extent) Keys() []interface{} {
	keys := make([]interface{}, t.Size)
	for i := range keys {
		keys[i] = int32(i)
	}
	return keys
}

// EnumKeys returns the key set of an Enum or Extent.
func EnumKeys(t Type) (map[interface{}]struct{}, bool) {
	var keys []interface{}
	switch t := t.(type) {
	case *Enum:
		keys = t.Keys()
	case *Extent:
		keys = t.Keys()
	default:
		return nil, false
	}
	set := make(map[interface{}]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, true
}

// EnumsEqual reports whether two enum types have equal value sets.
func EnumsEqual(a, b Type) bool {
	ka, ok := EnumKeys(a)
	if !ok {
		return false
	}
	kb, ok := EnumKeys(b)
	if !ok || len(ka) != len(kb) {
		return false
	}
	for k := range ka {
		if _, ok := kb[k]; !ok {
			return false
		}
	}
	return true
}

func enumString(t *Enum) string {
	parts := make([]string, len(t.Values))
	for i, v := range t.Values {
		parts[i] = v.String()
	}
	sort.Strings(parts)
	s := "{"
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + "}"
}

func extentString(t *Extent) string { return "0.." + strconv.Itoa(t.Size) }
