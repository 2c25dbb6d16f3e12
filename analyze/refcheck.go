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

package analyze

import (
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/internal/util"
)

// Reach is the latest-defined module binding reachable from a binding through the module
// bindings its initializer references, directly or within function literals.
type Reach struct {
	Loc     diag.Loc
	Binding *ast.LetBinding
}

// LastReached computes Reach for the let-bindings of one module scope. Bindings within a
// reference cycle reach each other, so every binding of a strongly connected component shares
// one result.
type LastReached struct {
	scope *ast.ModuleScope
	memo  map[*ast.LetBinding]Reach
}

func NewLastReached(scope *ast.ModuleScope) *LastReached {
	lr := &LastReached{scope: scope, memo: make(map[*ast.LetBinding]Reach)}
	var lets []*ast.LetBinding
	index := make(map[*ast.LetBinding]int)
	for _, stmt := range scope.Body {
		if let, ok := stmt.(*ast.LetStmt); ok {
			index[let.Binding] = len(lets)
			lets = append(lets, let.Binding)
		}
	}
	g := util.NewGraph(len(lets))
	for i, b := range lets {
		for _, dep := range lr.Refs(b.Init) {
			if j, ok := index[dep]; ok {
				g.AddEdge(i, j)
			}
		}
	}
	// components follow the components they reference
	for _, c := range g.SCC() {
		latest := Reach{Loc: lets[c[0]].Loc, Binding: lets[c[0]]}
		for _, v := range c {
			if b := lets[v]; latest.Loc.Before(b.Loc) {
				latest = Reach{Loc: b.Loc, Binding: b}
			}
			for _, w := range g[v] {
				if r, ok := lr.memo[lets[w]]; ok && latest.Loc.Before(r.Loc) {
					latest = r
				}
			}
		}
		for _, v := range c {
			lr.memo[lets[v]] = latest
		}
	}
	return lr
}

// Of returns the latest module binding reachable from b, which is b itself when nothing later is reachable.
func (lr *LastReached) Of(b *ast.LetBinding) Reach {
	if r, ok := lr.memo[b]; ok {
		return r
	}
	return Reach{Loc: b.Loc, Binding: b}
}

// Refs returns the module let-bindings referenced within t, including within function literals.
func (lr *LastReached) Refs(t ast.Term) []*ast.LetBinding {
	var refs []*ast.LetBinding
	ast.Visit(t, func(t ast.Term) bool {
		if ref, ok := t.(*ast.Ref); ok {
			if let, ok := ref.Binding.(*ast.LetBinding); ok && let.Owner == ast.Scope(lr.scope) {
				refs = append(refs, let)
			}
		}
		return true
	})
	return refs
}

// Latest returns the latest module binding reachable from the references within t.
func (lr *LastReached) Latest(t ast.Term) (Reach, bool) {
	var latest Reach
	found := false
	for _, dep := range lr.Refs(t) {
		if r := lr.Of(dep); !found || latest.Loc.Before(r.Loc) {
			latest, found = r, true
		}
	}
	return latest, found
}

// CheckRefs rejects applications executed during module initialization which may reach a module
// binding that is not yet initialized. Applications within function literals execute later and
// are not checked; any application executed during initialization is assumed to call every
// function literal it can reach.
func CheckRefs(m *ast.Module, sink *diag.Sink) {
	lr := NewLastReached(m.Scope)
	for _, stmt := range m.Scope.Body {
		var root ast.Term
		switch stmt := stmt.(type) {
		case *ast.LetStmt:
			root = stmt.Binding.Init
		case *ast.ExprStmt:
			root = stmt.Term
		}
		ast.Visit(root, func(t ast.Term) bool {
			switch t := t.(type) {
			case *ast.LambdaTerm:
				return false
			case *ast.AppTerm:
				r, ok := lr.Latest(t)
				if ok && !r.Loc.Before(t.Loc) {
					sink.Report(t.Loc, diag.BindUnreached, "application may reach {0}, defined at {1}, before it is initialized", r.Binding.Name, r.Loc)
					return false
				}
			}
			return true
		})
	}
}
