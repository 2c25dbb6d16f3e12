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

// Walk calls f for t and each type nested within t, in depth-first order. If f returns false,
// types nested within the current type are skipped.
//
// Walk does not descend into the bodies of constructors or the targets of references.
func Walk(t Type, f func(Type) bool) {
	if t == nil || !f(t) {
		return
	}
	switch t := t.(type) {
	case *App:
		Walk(t.Base, f)
		Walk(t.Arg, f)
	case *List:
		t.Items.Range(func(_ int, item Type) bool {
			Walk(item, f)
			return true
		})
	case *Tuple:
		t.Items.Range(func(_ int, item Type) bool {
			Walk(item, f)
			return true
		})
	case *Map:
		t.Fields.Range(func(_ string, field Type) bool {
			Walk(field, f)
			return true
		})
		Walk(t.Rest, f)
	case *Enum:
		Walk(t.Base, f)
	case *Scheme:
		Walk(t.Body, f)
	}
}

// Transform replaces types within t. f is called for t first: if it returns a different type,
// the replacement is used as is. Otherwise Transform descends into the nested types of t and
// rebuilds t only if a nested type changed.
func Transform(t Type, f func(Type) Type) Type {
	if t == nil {
		return nil
	}
	if u := f(t); u != t {
		return u
	}
	switch t := t.(type) {
	case *App:
		base, arg := Transform(t.Base, f), Transform(t.Arg, f)
		if base == t.Base && arg == t.Arg {
			return t
		}
		return &App{Base: base, Arg: arg}
	case *List:
		items := t.Items.Map(func(item Type) Type { return Transform(item, f) })
		if items == t.Items {
			return t
		}
		return &List{Items: items}
	case *Tuple:
		items := t.Items.Map(func(item Type) Type { return Transform(item, f) })
		if items == t.Items {
			return t
		}
		return &Tuple{Items: items}
	case *Map:
		fields := t.Fields.Map(func(field Type) Type { return Transform(field, f) })
		rest := Transform(t.Rest, f)
		if fields == t.Fields && rest == t.Rest {
			return t
		}
		return FlattenRow(fields, rest)
	case *Enum:
		base := Transform(t.Base, f)
		if base == t.Base {
			return t
		}
		return &Enum{Base: base, Values: t.Values}
	case *Scheme:
		body := Transform(t.Body, f)
		if body == t.Body {
			return t
		}
		params, copies := copyParams(t.Params)
		return NewScheme(params, SubstParams(body, copies))
	}
	return t
}

// copyParams returns unowned copies of params, and the substitution from params to their copies.
func copyParams(params []*Param) ([]*Param, map[*Param]Type) {
	copies := make([]*Param, len(params))
	subst := make(map[*Param]Type, len(params))
	for i, p := range params {
		copies[i] = p.Copy()
		subst[p] = copies[i]
	}
	return copies, subst
}

// FlattenRow builds a row from fields and an extension, merging the labels of an extension which is itself a row.
// Labels of the outer row take precedence.
func FlattenRow(fields TypeMap, rest Type) *Map {
	for {
		inner, ok := rest.(*Map)
		if !ok {
			return &Map{Fields: fields, Rest: rest}
		}
		b := fields.Builder()
		inner.Fields.Range(func(label string, t Type) bool {
			if _, ok := fields.Get(label); !ok {
				b.Set(label, t)
			}
			return true
		})
		fields, rest = b.Build(), inner.Rest
	}
}

// FreeVars returns the unification variables within t, in order of first occurrence.
func FreeVars(t Type) []*Var {
	var vars []*Var
	seen := make(map[*Var]struct{})
	Walk(t, func(t Type) bool {
		if tv, ok := t.(*Var); ok {
			if _, ok := seen[tv]; !ok {
				seen[tv] = struct{}{}
				vars = append(vars, tv)
			}
		}
		return true
	})
	return vars
}

// HasFreeVars reports whether t contains any unification variable.
func HasFreeVars(t Type) bool {
	found := false
	Walk(t, func(t Type) bool {
		if _, ok := t.(*Var); ok {
			found = true
		}
		return !found
	})
	return found
}

// ContainsVar reports whether t contains a unification variable with the given id.
func ContainsVar(t Type, id int) bool {
	found := false
	Walk(t, func(t Type) bool {
		if tv, ok := t.(*Var); ok && tv.Id == id {
			found = true
		}
		return !found
	})
	return found
}

// Params returns the type parameters within t, in order of first occurrence.
func Params(t Type) []*Param {
	var params []*Param
	seen := make(map[*Param]struct{})
	Walk(t, func(t Type) bool {
		if p, ok := t.(*Param); ok {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				params = append(params, p)
			}
		}
		return true
	})
	return params
}

// Equal reports structural equality of two types. Constructors, parameters and variables are
// compared by identity (variables by id); references are compared by target.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Id == b.Id
	case *Ref:
		b, ok := b.(*Ref)
		return ok && a.Target != nil && a.Target == b.Target
	case *App:
		b, ok := b.(*App)
		return ok && Equal(a.Base, b.Base) && Equal(a.Arg, b.Arg)
	case *List:
		b, ok := b.(*List)
		return ok && listsEqual(a.Items, b.Items)
	case *Tuple:
		b, ok := b.(*Tuple)
		return ok && listsEqual(a.Items, b.Items)
	case *Map:
		b, ok := b.(*Map)
		if !ok || a.Fields.Len() != b.Fields.Len() || !Equal(a.Rest, b.Rest) {
			return false
		}
		eq := true
		a.Fields.Range(func(label string, t Type) bool {
			u, ok := b.Fields.Get(label)
			eq = ok && Equal(t, u)
			return eq
		})
		return eq
	case *Enum, *Extent:
		return EnumsEqual(a, b)
	case *Scheme:
		b, ok := b.(*Scheme)
		return ok && Equal(a.Body, b.Body)
	case *Wildcard:
		_, ok := b.(*Wildcard)
		return ok
	}
	return false
}

func listsEqual(a, b TypeList) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !Equal(a.Get(i), b.Get(i)) {
			return false
		}
	}
	return true
}
