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

// ast provides the term, statement, binding, scope and module model of parsed kestrel source, with
// traversals over it.
package ast

import (
	"strconv"

	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// Term is the base for all terms.
type Term interface {
	// Name of the syntax-type of the term.
	TermName() string
	// Source location assigned by the parser.
	Location() diag.Loc
	// Type returns the type of the term. Literal types are invariant; other term types are only
	// available after type-checking.
	Type() types.Type
}

// Typed is implemented by terms which carry a calculated type slot.
type Typed interface {
	Term
	// Assign a type to the term. Type assignments should occur indirectly, during type-checking.
	SetType(t types.Type)
}

var (
	_ Typed = (*Ref)(nil)
	_ Term  = (*BoolLit)(nil)
	_ Term  = (*IntLit)(nil)
	_ Term  = (*LongLit)(nil)
	_ Term  = (*DoubleLit)(nil)
	_ Term  = (*StringLit)(nil)
	_ Term  = (*SymbolLit)(nil)
	_ Typed = (*ListTerm)(nil)
	_ Typed = (*TupleTerm)(nil)
	_ Typed = (*MapTerm)(nil)
	_ Typed = (*RecordTerm)(nil)
	_ Typed = (*VariantTerm)(nil)
	_ Typed = (*CondTerm)(nil)
	_ Typed = (*LambdaTerm)(nil)
	_ Typed = (*AppTerm)(nil)
	_ Typed = (*CoerceTerm)(nil)

	_ types.Value = (*BoolLit)(nil)
	_ types.Value = (*IntLit)(nil)
	_ types.Value = (*LongLit)(nil)
	_ types.Value = (*DoubleLit)(nil)
	_ types.Value = (*StringLit)(nil)
	_ types.Value = (*SymbolLit)(nil)
)

type slot struct{ inferred types.Type }

// Get the calculated type of the term.
func (s *slot) Type() types.Type { return s.inferred }

// Assign a type to the term. Type assignments should occur indirectly, during type-checking.
func (s *slot) SetType(t types.Type) { s.inferred = t }

// Reference to a value binding: `x`, or `m.x` for a qualified reference into an imported module.
type Ref struct {
	Name      string
	Qualifier string
	Loc       diag.Loc
	// Binding is nil until references are resolved. The parser pre-binds inline parameter
	// references (`$0`, `$$1`) to an unowned inline ParamBinding.
	Binding ValueBinding
	slot
}

func (t *Ref) TermName() string     { return "Ref" }
func (t *Ref) Location() diag.Loc   { return t.Loc }
func (t *Ref) IsQualified() bool    { return t.Qualifier != "" }
func (t *Ref) QualifiedName() string {
	if t.Qualifier == "" {
		return t.Name
	}
	return t.Qualifier + "." + t.Name
}

// Literal is implemented by constant terms with an invariant builtin type.
type Literal interface {
	Term
	types.Value
}

// Boolean literal: `true`
type BoolLit struct {
	Value bool
	Loc   diag.Loc
}

func (t *BoolLit) TermName() string     { return "Bool" }
func (t *BoolLit) Location() diag.Loc   { return t.Loc }
func (t *BoolLit) Type() types.Type     { return types.Bool }
func (t *BoolLit) Key() interface{}     { return t.Value }
func (t *BoolLit) ValueType() types.Type { return types.Bool }
func (t *BoolLit) String() string       { return strconv.FormatBool(t.Value) }

// 32-bit integer literal: `1`. Arithmetic on Int wraps.
type IntLit struct {
	Value int32
	Loc   diag.Loc
}

func (t *IntLit) TermName() string     { return "Int" }
func (t *IntLit) Location() diag.Loc   { return t.Loc }
func (t *IntLit) Type() types.Type     { return types.Int }
func (t *IntLit) Key() interface{}     { return t.Value }
func (t *IntLit) ValueType() types.Type { return types.Int }
func (t *IntLit) String() string       { return strconv.FormatInt(int64(t.Value), 10) }

// 64-bit integer literal: `1L`
type LongLit struct {
	Value int64
	Loc   diag.Loc
}

func (t *LongLit) TermName() string     { return "Long" }
func (t *LongLit) Location() diag.Loc   { return t.Loc }
func (t *LongLit) Type() types.Type     { return types.Long }
func (t *LongLit) Key() interface{}     { return t.Value }
func (t *LongLit) ValueType() types.Type { return types.Long }
func (t *LongLit) String() string       { return strconv.FormatInt(t.Value, 10) + "L" }

// Floating-point literal: `1.5`
type DoubleLit struct {
	Value float64
	Loc   diag.Loc
}

func (t *DoubleLit) TermName() string     { return "Double" }
func (t *DoubleLit) Location() diag.Loc   { return t.Loc }
func (t *DoubleLit) Type() types.Type     { return types.Double }
func (t *DoubleLit) Key() interface{}     { return t.Value }
func (t *DoubleLit) ValueType() types.Type { return types.Double }
func (t *DoubleLit) String() string {
	s := strconv.FormatFloat(t.Value, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'n' || c == 'I' {
			return s
		}
	}
	return s + ".0"
}

// String literal: `"abc"`
type StringLit struct {
	Value string
	Loc   diag.Loc
}

type stringKey string

func (t *StringLit) TermName() string     { return "String" }
func (t *StringLit) Location() diag.Loc   { return t.Loc }
func (t *StringLit) Type() types.Type     { return types.String }
func (t *StringLit) Key() interface{}     { return stringKey(t.Value) }
func (t *StringLit) ValueType() types.Type { return types.String }
func (t *StringLit) String() string       { return strconv.Quote(t.Value) }

// Symbol literal: `#red`. Symbols are the labels of records and sums.
type SymbolLit struct {
	Value string
	Loc   diag.Loc
}

type symbolKey string

func (t *SymbolLit) TermName() string     { return "Symbol" }
func (t *SymbolLit) Location() diag.Loc   { return t.Loc }
func (t *SymbolLit) Type() types.Type     { return types.Symbol }
func (t *SymbolLit) Key() interface{}     { return symbolKey(t.Value) }
func (t *SymbolLit) ValueType() types.Type { return types.Symbol }
func (t *SymbolLit) String() string       { return "#" + t.Value }

// Homogeneous list: `[1, 2, 3]`
type ListTerm struct {
	Items []Term
	Loc   diag.Loc
	slot
}

func (t *ListTerm) TermName() string   { return "List" }
func (t *ListTerm) Location() diag.Loc { return t.Loc }

// Heterogeneous tuple: `(1, "a")`
type TupleTerm struct {
	Items []Term
	Loc   diag.Loc
	slot
}

func (t *TupleTerm) TermName() string   { return "Tuple" }
func (t *TupleTerm) Location() diag.Loc { return t.Loc }

// Key/value entry of a map or record term.
type Entry struct {
	Key   Term
	Value Term
}

// Homogeneous map: `[#a: 1, #b: 2]`
type MapTerm struct {
	Entries []Entry
	Loc     diag.Loc
	slot
}

func (t *MapTerm) TermName() string   { return "Map" }
func (t *MapTerm) Location() diag.Loc { return t.Loc }

// Heterogeneous record with constant symbol keys: `(a: 1, b: "x")`
type RecordTerm struct {
	Entries []Entry
	Loc     diag.Loc
	slot
}

func (t *RecordTerm) TermName() string   { return "Record" }
func (t *RecordTerm) Location() diag.Loc { return t.Loc }

// Variant of a sum type: `<some: 1>`
type VariantTerm struct {
	Label string
	Value Term
	Loc   diag.Loc
	slot
}

func (t *VariantTerm) TermName() string   { return "Variant" }
func (t *VariantTerm) Location() diag.Loc { return t.Loc }

// Case of a conditional selection.
type CondCase struct {
	Cond  Term
	Value Term
}

// Conditional selection: `c1 ? a : c2 ? b : d`
type CondTerm struct {
	Cases []CondCase
	Else  Term
	Loc   diag.Loc
	slot
}

func (t *CondTerm) TermName() string   { return "Cond" }
func (t *CondTerm) Location() diag.Loc { return t.Loc }

// Function literal: `{ x, y => plus(x, y) }`. Parameters, statements and captures live in the
// literal's scope.
type LambdaTerm struct {
	Scope *LambdaScope
}

func (t *LambdaTerm) TermName() string     { return "Lambda" }
func (t *LambdaTerm) Location() diag.Loc   { return t.Scope.Loc }
func (t *LambdaTerm) Type() types.Type     { return t.Scope.Signature.Type }
func (t *LambdaTerm) SetType(ty types.Type) { t.Scope.Signature.Type = ty }

// Flavor of an application term.
type Flavor uint8

const (
	// Function call: `f(x, y)`
	Call Flavor = iota
	// Collection index: `xs[i]`
	Index
	// Structure or field address: `r.x`, `t.0`
	Address
)

func (f Flavor) String() string {
	switch f {
	case Call:
		return "Call"
	case Index:
		return "Index"
	case Address:
		return "Address"
	}
	return "Flavor(" + strconv.Itoa(int(f)) + ")"
}

// Application: `f(x)`, `xs[0]`, `r.x`
type AppTerm struct {
	Flavor Flavor
	Base   Term
	Args   []Term
	Loc    diag.Loc
	slot
}

func (t *AppTerm) TermName() string   { return "App" }
func (t *AppTerm) Location() diag.Loc { return t.Loc }

// Unchecked type override: the body of synthesized nominal constructors and destructors.
type CoerceTerm struct {
	Term Term
	To   types.Type
	Loc  diag.Loc
	slot
}

func (t *CoerceTerm) TermName() string   { return "Coerce" }
func (t *CoerceTerm) Location() diag.Loc { return t.Loc }

// IsConstant reports whether t is a literal.
func IsConstant(t Term) bool {
	_, ok := t.(Literal)
	return ok
}
