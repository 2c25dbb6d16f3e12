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

// Type list: the variable-arity argument of `Tup`, `(Int, String)` is `Tup` applied to `[Int, String]`.
type List struct {
	Items TypeList
}

func NewList(ts ...Type) *List { return &List{Items: NewTypeList(ts...)} }

func (t *List) Kind() Kind { return StarStream }

// Type tuple: the fixed-arity argument of a constructor with several parameters, `Map(Symbol, Int)`.
type Tuple struct {
	Items TypeList
}

func NewTuple(ts ...Type) *Tuple { return &Tuple{Items: NewTypeList(ts...)} }

func (t *Tuple) Kind() Kind {
	items := make([]Kind, 0, t.Items.Len())
	t.Items.Range(func(_ int, item Type) bool {
		items = append(items, item.Kind())
		return true
	})
	return &TupleKind{Items: items}
}

// Type map: the labeled argument of `Rec` and `Sum`, `(a: Int | r)`.
//
// Rest is nil for a closed row, or a row of kind `{*}` (usually a variable) which extends the row
// with further labels.
type Map struct {
	Fields TypeMap
	Rest   Type
}

func NewMap(fields map[string]Type, rest Type) *Map {
	return &Map{Fields: NewTypeMap(fields), Rest: rest}
}

func (t *Map) Kind() Kind { return StarKeyed }

// IsClosed reports whether the row has no extension.
func (t *Map) IsClosed() bool { return t.Rest == nil }
