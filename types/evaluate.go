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

// Evaluate reduces t to head-normal form: resolved references are replaced by their denotations,
// and applications of type abstractions are reduced by substituting their arguments for the
// abstraction's parameters. Nested types are not evaluated.
func Evaluate(t Type) Type {
	for {
		switch tt := t.(type) {
		case *Ref:
			d := tt.Resolved()
			if d == nil || d == Type(tt) {
				return t
			}
			t = d
			continue
		case *App:
			base := Evaluate(tt.Base)
			if c, ok := base.(*Const); ok && c.IsAbstraction() {
				t = ApplyAbstraction(c, tt.Arg)
				continue
			}
			if base != tt.Base {
				return &App{Base: base, Arg: tt.Arg}
			}
		}
		return t
	}
}

// ApplyAbstraction substitutes arg for the parameters of the abstraction c within its body. An
// abstraction with several parameters expects a type tuple of matching arity.
func ApplyAbstraction(c *Const, arg Type) Type {
	args := map[*Param]Type{}
	switch len(c.Params) {
	case 0:
		return c.Body
	case 1:
		args[c.Params[0]] = arg
	default:
		tuple, ok := arg.(*Tuple)
		diag.Invariant(ok && tuple.Items.Len() == len(c.Params), "abstraction applied to a type of the wrong arity", c.Name, arg)
		for i, p := range c.Params {
			args[p] = tuple.Items.Get(i)
		}
	}
	return SubstParams(c.Body, args)
}

// SubstParams replaces type parameters within t.
func SubstParams(t Type, args map[*Param]Type) Type {
	if len(args) == 0 {
		return t
	}
	return Transform(t, func(t Type) Type {
		if p, ok := t.(*Param); ok {
			if u, ok := args[p]; ok {
				return u
			}
		}
		return t
	})
}

// SubstVars replaces unification variables within t by id.
func SubstVars(t Type, vars map[int]Type) Type {
	if len(vars) == 0 {
		return t
	}
	return Transform(t, func(t Type) Type {
		if tv, ok := t.(*Var); ok {
			if u, ok := vars[tv.Id]; ok {
				return u
			}
		}
		return t
	})
}

// IsHigherRank reports whether t contains a scheme nested below its top level.
func IsHigherRank(t Type) bool {
	nested := false
	Walk(Strip(t), func(t Type) bool {
		if _, ok := t.(*Scheme); ok {
			nested = true
		}
		return !nested
	})
	return nested
}
