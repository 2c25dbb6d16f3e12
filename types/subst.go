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
	"strconv"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/wdamron/kestrel/diag"
)

var emptySubst = immutable.NewSortedMap(nil)

// Subst is a persistent substitution from unification variable ids to types.
//
// A substitution is always closed: no bound type mentions a variable bound by the substitution.
type Subst struct {
	m *immutable.SortedMap
}

func NewSubst() Subst { return Subst{emptySubst} }

// Len returns the number of bound variables.
func (s Subst) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Get returns the type bound to the variable with the given id.
func (s Subst) Get(id int) (Type, bool) {
	if s.m == nil {
		return nil, false
	}
	t, ok := s.m.Get(id)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Bind composes the substitution with `tv := t`. t must not contain tv; the caller performs the
// occurs check and reports recursive types.
func (s Subst) Bind(tv *Var, t Type) Subst {
	if s.m == nil {
		s.m = emptySubst
	}
	t = s.Apply(t)
	diag.Invariant(!ContainsVar(t, tv.Id), "binding a type variable to a type which contains it", tv, t)
	single := Subst{emptySubst.Set(tv.Id, t)}
	m := s.m
	iter := s.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		u := single.Apply(v.(Type))
		if u != v.(Type) {
			m = m.Set(k, u)
		}
	}
	out := Subst{m.Set(tv.Id, t)}
	out.assertClosed(tv.Id, t)
	return out
}

func (s Subst) assertClosed(id int, t Type) {
	s.Range(func(_ int, u Type) bool {
		diag.Invariant(!ContainsVar(u, id), "substitution is not closed", id, t, s.String())
		return true
	})
	for _, tv := range FreeVars(t) {
		_, bound := s.Get(tv.Id)
		diag.Invariant(!bound, "substitution is not closed", tv, t, s.String())
	}
}

// Range iterates over the bindings in order of variable id.
func (s Subst) Range(f func(int, Type) bool) {
	if s.m == nil {
		return
	}
	iter := s.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(int), v.(Type)) {
			return
		}
	}
}

// Apply replaces every bound variable within t. t is returned unchanged (by identity) when it
// contains no bound variable.
func (s Subst) Apply(t Type) Type {
	if s.Len() == 0 || t == nil {
		return t
	}
	return Transform(t, func(t Type) Type {
		if tv, ok := t.(*Var); ok {
			if u, ok := s.Get(tv.Id); ok {
				return u
			}
		}
		return t
	})
}

// Resolve replaces a bound variable at the head of t. Nested types are not substituted.
func (s Subst) Resolve(t Type) Type {
	if tv, ok := t.(*Var); ok {
		if u, ok := s.Get(tv.Id); ok {
			return u
		}
	}
	return t
}

func (s Subst) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Range(func(id int, t Type) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString("'" + strconv.Itoa(id) + " := ")
		sb.WriteString(TypeString(t))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
