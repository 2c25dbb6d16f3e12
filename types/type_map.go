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
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyTypeMap = TypeMap{emptyMap}

// TypeMap contains immutable mappings from labels to types: the fields of a record or the cases of a sum.
type TypeMap struct {
	m *immutable.SortedMap
}

// Create a TypeMap with a single entry.
func SingletonTypeMap(label string, t Type) TypeMap {
	return TypeMap{emptyMap.Set(label, t)}
}

// Create a TypeMap from a Go map.
func NewTypeMap(m map[string]Type) TypeMap {
	b := NewTypeMapBuilder()
	for label, t := range m {
		b.Set(label, t)
	}
	return b.Build()
}

// Get the number of entries in the map.
func (m TypeMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the type for a label.
func (m TypeMap) Get(label string) (Type, bool) {
	if m.m == nil {
		return nil, false
	}
	t, ok := m.m.Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Set returns a map with label bound to t.
func (m TypeMap) Set(label string, t Type) TypeMap {
	if m.m == nil {
		return SingletonTypeMap(label, t)
	}
	return TypeMap{m.m.Set(label, t)}
}

// Labels returns the labels of the map in sorted order.
func (m TypeMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(label string, _ Type) bool {
		labels = append(labels, label)
		return true
	})
	return labels
}

// Iterate over entries in the map, sorted by label.
// If f returns false, iteration will be stopped.
func (m TypeMap) Range(f func(string, Type) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Type)) {
			return
		}
	}
}

// Map returns a map with f applied to each type. The receiver is returned when f changes nothing.
func (m TypeMap) Map(f func(Type) Type) TypeMap {
	var b TypeMapBuilder
	changed := false
	m.Range(func(label string, t Type) bool {
		u := f(t)
		if u != t {
			if !changed {
				changed = true
				b = m.Builder()
			}
			b.Set(label, u)
		}
		return true
	})
	if !changed {
		return m
	}
	return b.Build()
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m TypeMap) Builder() TypeMapBuilder {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return TypeMapBuilder{immutable.NewSortedMapBuilder(imm)}
}

// TypeMapBuilder enables in-place updates of a map before finalization.
type TypeMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewTypeMapBuilder() TypeMapBuilder {
	return TypeMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Get the number of entries in the builder.
func (b TypeMapBuilder) Len() int { return b.b.Len() }

// Set the type for the given label in the builder.
func (b TypeMapBuilder) Set(label string, t Type) TypeMapBuilder {
	b.b.Set(label, t)
	return b
}

// Delete the given label from the builder.
func (b TypeMapBuilder) Delete(label string) TypeMapBuilder {
	b.b.Delete(label)
	return b
}

// Finalize the builder into an immutable map.
func (b TypeMapBuilder) Build() TypeMap { return TypeMap{b.b.Map()} }
