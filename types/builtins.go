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

// Predeclared constructors.
var (
	Int    = NewConst("Int", Star)
	Long   = NewConst("Long", Star)
	Double = NewConst("Double", Star)
	Bool   = NewConst("Bool", Star)
	String = NewConst("String", Star)
	Symbol = NewConst("Symbol", Star)

	// `[T]`
	ListC = NewConst("List", &ArrowKind{From: Star, To: Star})
	// `Map(K, V)`, written `[K : V]`
	MapC = NewConst("Map", &ArrowKind{From: &TupleKind{Items: []Kind{Star, Star}}, To: Star})
	// `Fn(Tup(params...), R)`, written `(params...) -> R`
	FnC = NewConst("Fn", &ArrowKind{From: &TupleKind{Items: []Kind{Star, Star}}, To: Star})
	// `Tup([items...])`, written `(items...)`
	TupC = NewConst("Tup", &ArrowKind{From: StarStream, To: Star})
	// `Rec(row)`, written `(a: A, b: B)`
	RecC = NewConst("Rec", &ArrowKind{From: StarKeyed, To: Star})
	// `Sum(row)`, written `<a: A | b: B>`
	SumC = NewConst("Sum", &ArrowKind{From: StarKeyed, To: Star})
	// `New(Rep)` marks a nominal type definition.
	NewC = NewConst("New", &ArrowKind{From: Star, To: Star})

	// The empty tuple type `()`.
	Unit = NewTup()
)

// Builtins maps the names of predeclared constructors to their type bindings.
var Builtins = func() map[string]*Builtin {
	m := make(map[string]*Builtin)
	for _, c := range []*Const{Int, Long, Double, Bool, String, Symbol, ListC, MapC, FnC, TupC, RecC, SumC, NewC} {
		m[c.Name] = &Builtin{Const: c}
	}
	return m
}()

// Function type: `(A, B) -> R`
func NewFn(params []Type, result Type) *App {
	return &App{Base: FnC, Arg: NewTuple(NewTup(params...), result)}
}

// Function type with a parameter type which is not necessarily a tuple: `P -> R`
func NewFnOf(params Type, result Type) *App {
	return &App{Base: FnC, Arg: NewTuple(params, result)}
}

// FnParts returns the parameter and result types of a function type.
func FnParts(t Type) (params Type, result Type, ok bool) {
	app, ok := t.(*App)
	if !ok || app.Base != FnC {
		return nil, nil, false
	}
	arg, ok := app.Arg.(*Tuple)
	if !ok || arg.Items.Len() != 2 {
		return nil, nil, false
	}
	return arg.Items.Get(0), arg.Items.Get(1), true
}

// Tuple type: `(A, B)`
func NewTup(items ...Type) *App { return &App{Base: TupC, Arg: NewList(items...)} }

// TupItems returns the item types of a tuple type.
func TupItems(t Type) (TypeList, bool) {
	app, ok := t.(*App)
	if !ok || app.Base != TupC {
		return TypeList{}, false
	}
	l, ok := app.Arg.(*List)
	if !ok {
		return TypeList{}, false
	}
	return l.Items, true
}

// IsUnit reports whether t is the empty tuple type.
func IsUnit(t Type) bool {
	items, ok := TupItems(t)
	return ok && items.Len() == 0
}

// List type: `[T]`
func NewListOf(elem Type) *App { return &App{Base: ListC, Arg: elem} }

// ListElem returns the element type of a list type.
func ListElem(t Type) (Type, bool) {
	app, ok := t.(*App)
	if !ok || app.Base != ListC {
		return nil, false
	}
	return app.Arg, true
}

// Map type: `[K : V]`
func NewMapOf(key, value Type) *App { return &App{Base: MapC, Arg: NewTuple(key, value)} }

// MapParts returns the key and value types of a map type.
func MapParts(t Type) (key, value Type, ok bool) {
	app, ok := t.(*App)
	if !ok || app.Base != MapC {
		return nil, nil, false
	}
	arg, ok := app.Arg.(*Tuple)
	if !ok || arg.Items.Len() != 2 {
		return nil, nil, false
	}
	return arg.Items.Get(0), arg.Items.Get(1), true
}

// Record type: `(a: A | r)`
func NewRec(row *Map) *App { return &App{Base: RecC, Arg: row} }

// Sum type: `<a: A | r>`
func NewSum(row *Map) *App { return &App{Base: SumC, Arg: row} }

// RecRow returns the row of a record type.
func RecRow(t Type) (*Map, bool) { return rowOf(t, RecC) }

// SumRow returns the row of a sum type.
func SumRow(t Type) (*Map, bool) { return rowOf(t, SumC) }

func rowOf(t Type, c *Const) (*Map, bool) {
	app, ok := t.(*App)
	if !ok || app.Base != c {
		return nil, false
	}
	row, ok := app.Arg.(*Map)
	return row, ok
}

// NominalOf returns the nominal constructor at the head of t, with its argument if the nominal type is parameterized.
func NominalOf(t Type) (c *Const, arg Type, ok bool) {
	switch t := t.(type) {
	case *Const:
		return t, nil, t.Nominal
	case *App:
		if c, ok := t.Base.(*Const); ok && c.Nominal {
			return c, t.Arg, true
		}
	}
	return nil, nil, false
}
