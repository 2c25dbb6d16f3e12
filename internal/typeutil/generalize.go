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

package typeutil

import (
	"github.com/wdamron/kestrel/types"
)

// AmbientVars returns the free type-variables of ts under the current substitution, in order of
// first occurrence. These variables belong to types which are still being inferred.
func (ctx *Context) AmbientVars(ts []types.Type) []*types.Var {
	var vars []*types.Var
	seen := make(map[int]struct{})
	for _, t := range ts {
		if t == nil {
			continue
		}
		for _, tv := range types.FreeVars(ctx.Apply(t)) {
			if _, ok := seen[tv.Id]; !ok {
				seen[tv.Id] = struct{}{}
				vars = append(vars, tv)
			}
		}
	}
	return vars
}

// Generalize applies the current substitution to t and quantifies the variables which are not
// ambient for q. The result is a scheme only if some variable was quantified.
func (ctx *Context) Generalize(q *types.Quantifier, t types.Type) types.Type {
	return q.Quantify(ctx.Apply(t))
}

// IsGeneral reports whether every variable in vars is still an unbound, distinct variable under
// the current substitution: declared type parameters must not be narrowed by inference.
func (ctx *Context) IsGeneral(vars []*types.Var) bool {
	seen := make(map[int]struct{}, len(vars))
	for _, tv := range vars {
		tv, ok := ctx.Apply(tv).(*types.Var)
		if !ok {
			return false
		}
		if _, dup := seen[tv.Id]; dup {
			return false
		}
		seen[tv.Id] = struct{}{}
	}
	return true
}
