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

package astutil

import (
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/internal/util"
)

// Dependency analysis for the statements of a scope, in the manner of Haskell's binding groups.
// https://prime.haskell.org/wiki/RelaxedDependencyAnalysis
//
//   In Haskell 98, a group of bindings is sorted into strongly-connected components, and then type-checked
//   in dependency order (H98 s4.5.1).
//
// Let and expression statements are partitioned by the dependency edges recorded during reference
// resolution: a statement depends on the statement of each let-binding of the same scope it
// references. Edges to type definitions do not order statements.

// Groups computes the dependency groups of a scope and stores them in the scope.
func Groups(s *ast.ScopeBase) [][]ast.Stmt {
	var stmts []ast.Stmt
	index := make(map[ast.Stmt]int, len(s.Body))
	for _, stmt := range s.Body {
		switch stmt.(type) {
		case *ast.LetStmt, *ast.ExprStmt:
			index[stmt] = len(stmts)
			stmts = append(stmts, stmt)
		}
	}
	g := util.NewGraph(len(stmts))
	for from, stmt := range stmts {
		for _, dep := range s.Deps[stmt] {
			let, ok := dep.(*ast.LetBinding)
			if !ok || let.Stmt == nil {
				continue
			}
			if to, ok := index[let.Stmt]; ok {
				g.AddEdge(from, to)
			}
		}
	}
	sccs := g.SCC()
	groups := make([][]ast.Stmt, len(sccs))
	for i, c := range sccs {
		group := make([]ast.Stmt, len(c))
		for j, v := range c {
			group[j] = stmts[v]
		}
		groups[i] = group
	}
	s.Groups = groups
	return groups
}

// LetsFirst returns the statements of a group with let statements ahead of other statements,
// keeping source order otherwise.
func LetsFirst(group []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(group))
	for _, stmt := range group {
		if _, ok := stmt.(*ast.LetStmt); ok {
			out = append(out, stmt)
		}
	}
	for _, stmt := range group {
		if _, ok := stmt.(*ast.LetStmt); !ok {
			out = append(out, stmt)
		}
	}
	return out
}
