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

// Instantiator replaces the parameters of schemes and the wildcards of declared types with fresh
// unification variables.
type Instantiator struct {
	// Fresh creates a unification variable of the given kind. Source is the parameter the variable
	// replaces, or nil for a wildcard.
	Fresh func(k Kind, source *Param) *Var
	// Bound maps parameters of enclosing in-progress schemes to the variables they were
	// instantiated with. References to those parameters from nested declared types share the
	// enclosing variables.
	Bound map[*Param]Type
}

// Instantiate returns t with the parameters of t (if t is a scheme), the parameters in Bound, and
// all wildcards replaced. New parameter bindings are recorded in Bound when Bound is non-nil.
func (in *Instantiator) Instantiate(t Type) Type {
	args := make(map[*Param]Type, len(in.Bound))
	for p, u := range in.Bound {
		args[p] = u
	}
	if s, ok := t.(*Scheme); ok {
		for _, p := range s.Params {
			tv := in.Fresh(p.Kind(), p)
			args[p] = tv
			if in.Bound != nil {
				in.Bound[p] = tv
			}
		}
		t = s.Body
	}
	return Transform(t, func(t Type) Type {
		switch t := t.(type) {
		case *Param:
			if u, ok := args[t]; ok {
				return u
			}
		case *Wildcard:
			return in.Fresh(Star, nil)
		}
		return t
	})
}
