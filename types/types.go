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

// types provides the open type term algebra: constructors, applications, unification variables,
// scoped type parameters, references, enums, structural aggregates and quantified schemes.
package types

import (
	"github.com/wdamron/kestrel/diag"
)

// Type is the base interface for all types.
type Type interface {
	// Name of the syntax-type of the type.
	TypeName() string
	// Kind of the type. Ill-kinded applications report the kind of their base's result.
	Kind() Kind
}

var (
	_ Type = (*Const)(nil)
	_ Type = (*App)(nil)
	_ Type = (*Var)(nil)
	_ Type = (*Param)(nil)
	_ Type = (*Ref)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*Extent)(nil)
	_ Type = (*List)(nil)
	_ Type = (*Tuple)(nil)
	_ Type = (*Map)(nil)
	_ Type = (*Wildcard)(nil)
	_ Type = (*Scheme)(nil)
)

func (t *Const) TypeName() string    { return "Const" }
func (t *App) TypeName() string      { return "App" }
func (t *Var) TypeName() string      { return "Var" }
func (t *Param) TypeName() string    { return "Param" }
func (t *Ref) TypeName() string      { return "Ref" }
func (t *Enum) TypeName() string     { return "Enum" }
func (t *Extent) TypeName() string   { return "Extent" }
func (t *List) TypeName() string     { return "List" }
func (t *Tuple) TypeName() string    { return "Tuple" }
func (t *Map) TypeName() string      { return "Map" }
func (t *Wildcard) TypeName() string { return "Wildcard" }
func (t *Scheme) TypeName() string   { return "Scheme" }

// Type constructor: `Int`, `Fn`, an abstraction `Pair = (A, B) => (A, B)`, or a nominal type
// created by applying `New`.
//
// Constructors are equal only by identity.
type Const struct {
	Name string
	// Params are owned by the constructor when it is an abstraction or a parameterized nominal type.
	Params []*Param
	// Body is the right-hand side of an abstraction; applications of abstractions reduce by substitution.
	Body Type
	// Rep is the representation type of a nominal type.
	Rep     Type
	Nominal bool
	Loc     diag.Loc
	kind    Kind
}

// Create an atomic or builtin constructor of the given kind.
func NewConst(name string, k Kind) *Const { return &Const{Name: name, kind: k} }

// Create a type abstraction. The abstraction adopts params.
func NewAbstraction(name string, params []*Param, body Type) *Const {
	c := &Const{Name: name, Params: params, Body: body}
	c.kind = paramsKind(params, body.Kind())
	for _, p := range params {
		p.Adopt(c)
	}
	return c
}

// Create a nominal type with representation rep. The nominal type adopts params.
func NewNominal(name string, params []*Param, rep Type, loc diag.Loc) *Const {
	c := &Const{Name: name, Params: params, Rep: rep, Nominal: true, Loc: loc}
	c.kind = paramsKind(params, Star)
	for _, p := range params {
		p.Adopt(c)
	}
	return c
}

func paramsKind(params []*Param, result Kind) Kind {
	switch len(params) {
	case 0:
		return result
	case 1:
		return &ArrowKind{From: params[0].Kind(), To: result}
	}
	items := make([]Kind, len(params))
	for i, p := range params {
		items[i] = p.Kind()
	}
	return &ArrowKind{From: &TupleKind{Items: items}, To: result}
}

func (t *Const) Kind() Kind { return t.kind }

// IsAbstraction reports whether applications of t reduce by substitution.
func (t *Const) IsAbstraction() bool { return t.Body != nil }

// Type application: `[Int]`, `Map(Symbol, Int)`, `Box(Int)`
type App struct {
	Base Type
	Arg  Type
}

func (t *App) Kind() Kind {
	if k, ok := t.Base.Kind().(*ArrowKind); ok {
		return k.To
	}
	return Star
}

// Reference to a named type: unresolved until TypeRefResolver assigns a Target.
type Ref struct {
	Name string
	// Qualifier names an imported module alias, for `m.T`.
	Qualifier string
	Loc       diag.Loc
	Target    Binding
}

func (t *Ref) Kind() Kind {
	if t.Target == nil {
		return Star
	}
	if d := t.Target.Denotation(); d != nil {
		return d.Kind()
	}
	return Star
}

// Resolved returns the denotation of the referenced binding, or nil when the reference is unresolved.
func (t *Ref) Resolved() Type {
	if t.Target == nil {
		return nil
	}
	return t.Target.Denotation()
}

// Binding is a named type binding: a type definition, a type parameter, or a builtin constructor.
type Binding interface {
	BindingName() string
	// Denotation is the type a reference to the binding stands for.
	Denotation() Type
}

// Builtin is the type binding of a predeclared constructor.
type Builtin struct{ Const *Const }

func (b *Builtin) BindingName() string { return b.Const.Name }
func (b *Builtin) Denotation() Type    { return b.Const }

// Wildcard is a hole in a partially annotated declared type: `(_, Int) -> _`
type Wildcard struct {
	Loc diag.Loc
}

func (t *Wildcard) Kind() Kind { return Star }

// Scheme is a quantified type, owning its parameters: `<A> [A] -> Int`
type Scheme struct {
	Params []*Param
	Body   Type
}

// Create a scheme which adopts params.
func NewScheme(params []*Param, body Type) *Scheme {
	s := &Scheme{Params: params, Body: body}
	for _, p := range params {
		p.Adopt(s)
	}
	return s
}

func (t *Scheme) Kind() Kind { return t.Body.Kind() }

// Strip returns the body of a scheme, or t itself.
func Strip(t Type) Type {
	if s, ok := t.(*Scheme); ok {
		return s.Body
	}
	return t
}
