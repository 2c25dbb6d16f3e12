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

// Quantifier replaces the free unification variables of inferred types with named type
// parameters, producing schemes.
//
// Variables in the ambient set belong to enclosing types which are still being inferred; they are
// left free. Parameter names are deterministic: a variable instantiated from a declared parameter
// keeps that parameter's name when it is not already in use, and other variables receive
// sequential names (A..Z, AA, AB, ...) starting after the names reserved for ambient variables.
type Quantifier struct {
	ambient map[int]struct{}
	offset  int
	next    int
	used    map[string]struct{}
	// Bound maps quantified variable ids to the first parameter created for them.
	Bound map[int]*Param
}

// NewQuantifier creates a quantifier which leaves ambient variables free and never reuses the
// names in used.
func NewQuantifier(ambient []*Var, used []string) *Quantifier {
	q := &Quantifier{
		ambient: make(map[int]struct{}, len(ambient)),
		used:    make(map[string]struct{}, len(used)),
		Bound:   make(map[int]*Param),
	}
	for _, tv := range ambient {
		q.ambient[tv.Id] = struct{}{}
	}
	q.offset = len(q.ambient)
	for _, name := range used {
		q.used[name] = struct{}{}
	}
	return q
}

// IsAmbient reports whether the variable is left free by the quantifier.
func (q *Quantifier) IsAmbient(tv *Var) bool {
	_, ok := q.ambient[tv.Id]
	return ok
}

// Quantify returns a scheme binding every non-ambient free variable of t. A type without such
// variables is returned unchanged. When t is already a scheme, its parameters are copied into the new scheme.
func (q *Quantifier) Quantify(t Type) Type {
	var free []*Var
	for _, tv := range FreeVars(t) {
		if !q.IsAmbient(tv) {
			free = append(free, tv)
		}
	}
	if len(free) == 0 {
		return t
	}
	var params []*Param
	body := t
	if s, ok := t.(*Scheme); ok {
		copies, subst := copyParams(s.Params)
		params, body = append(params, copies...), SubstParams(s.Body, subst)
	}
	vars := make(map[int]Type, len(free))
	for _, tv := range free {
		p, ok := q.Bound[tv.Id]
		if ok {
			p = p.Copy()
		} else {
			p = q.param(tv)
			q.Bound[tv.Id] = p
		}
		params = append(params, p)
		vars[tv.Id] = p
	}
	return NewScheme(params, SubstVars(body, vars))
}

func (q *Quantifier) param(tv *Var) *Param {
	var name string
	if tv.Source != nil {
		if _, taken := q.used[tv.Source.Name]; !taken {
			name = tv.Source.Name
		}
	}
	for name == "" {
		candidate := ParamName(q.offset + q.next)
		q.next++
		if _, taken := q.used[candidate]; !taken {
			name = candidate
		}
	}
	q.used[name] = struct{}{}
	p := NewParam(name, tv.Kind())
	if tv.Source != nil {
		p.Loc = tv.Source.Loc
	}
	return p
}

// ParamName returns the i-th generated parameter name in base-26: A..Z, AA..AZ, BA, ...
func ParamName(i int) string {
	var buf [16]byte
	n := len(buf)
	for {
		n--
		buf[n] = byte('A' + i%26)
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return string(buf[n:])
}
