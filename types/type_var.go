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
	"github.com/wdamron/kestrel/diag"
)

// Unification variable. Ids are unique within one type-check run.
//
// The kind of a variable is the only constraint it carries: a variable of kind `Keyed` may only
// stand for the rest of a record or sum row.
type Var struct {
	Id   int
	kind Kind
	// Source is the declared parameter the variable was instantiated from, if any. Its name is
	// preferred when the variable is quantified again.
	Source *Param
}

// Create a new unification variable with the given id and kind.
func NewVar(id int, k Kind) *Var {
	if k == nil {
		k = Star
	}
	return &Var{Id: id, kind: k}
}

func (tv *Var) Kind() Kind { return tv.kind }

// Type parameter bound by exactly one owning scope type: a Scheme, an abstraction, or a
// parameterized nominal type.
type Param struct {
	Name  string
	Loc   diag.Loc
	kind  Kind
	owner Type
}

// Create an unowned type parameter.
func NewParam(name string, k Kind) *Param {
	if k == nil {
		k = Star
	}
	return &Param{Name: name, kind: k}
}

func (p *Param) Kind() Kind { return p.kind }

// Owner returns the scope type which binds p, or nil for an unowned (inline) parameter.
func (p *Param) Owner() Type { return p.owner }

// Adopt transfers ownership of p to owner. A parameter which is already owned by another scope
// type must be copied instead; adopting it is an internal error.
func (p *Param) Adopt(owner Type) {
	diag.Invariant(p.owner == nil || p.owner == owner, "type parameter "+p.Name+" is already owned by another scope type", p.Name)
	p.owner = owner
}

// Release clears the owner of p, allowing another scope type to adopt it.
func (p *Param) Release(owner Type) {
	diag.Invariant(p.owner == owner, "type parameter "+p.Name+" released by a scope type which does not own it", p.Name)
	p.owner = nil
}

// Copy returns an unowned copy of p.
func (p *Param) Copy() *Param { return &Param{Name: p.Name, Loc: p.Loc, kind: p.kind} }

// The type binding of a parameter is the parameter itself.
func (p *Param) BindingName() string { return p.Name }
func (p *Param) Denotation() Type    { return p }
