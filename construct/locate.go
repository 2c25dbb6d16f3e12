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

package construct

import (
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// Locate assigns source locations to nodes built without one, as a parser would: statement i of
// body is placed on line i+1, and the nodes of a statement receive increasing columns in
// depth-first order. Nodes which already carry a valid location keep it.
func Locate(file string, body []ast.Stmt) {
	for i, stmt := range body {
		l := &locator{file: file, line: i + 1}
		l.stmt(stmt)
	}
}

type locator struct {
	file string
	line int
	col  int
}

func (l *locator) next(loc *diag.Loc) {
	l.col++
	if !loc.IsValid() {
		*loc = diag.Loc{File: l.file, Line: l.line, Col: l.col}
	}
}

func (l *locator) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ImportStmt:
		l.next(&s.Loc)
	case *ast.ExportStmt:
		l.next(&s.Loc)
	case *ast.LetStmt:
		l.next(&s.Binding.Loc)
		l.typ(s.Binding.Declared)
		l.term(s.Binding.Init)
	case *ast.TypeDefStmt:
		l.next(&s.Def.Loc)
		for _, p := range s.Def.Params {
			l.next(&p.Loc)
		}
		l.typ(s.Def.Value)
	case *ast.ExprStmt:
		l.term(s.Term)
	}
}

func (l *locator) typ(t types.Type) {
	types.Walk(t, func(t types.Type) bool {
		switch t := t.(type) {
		case *types.Ref:
			l.next(&t.Loc)
		case *types.Param:
			l.next(&t.Loc)
		case *types.Wildcard:
			l.next(&t.Loc)
		case *types.Scheme:
			for _, p := range t.Params {
				l.next(&p.Loc)
			}
		}
		return true
	})
}

func (l *locator) term(t ast.Term) {
	ast.Visit(t, func(t ast.Term) bool {
		switch t := t.(type) {
		case *ast.Ref:
			l.next(&t.Loc)
		case *ast.BoolLit:
			l.next(&t.Loc)
		case *ast.IntLit:
			l.next(&t.Loc)
		case *ast.LongLit:
			l.next(&t.Loc)
		case *ast.DoubleLit:
			l.next(&t.Loc)
		case *ast.StringLit:
			l.next(&t.Loc)
		case *ast.SymbolLit:
			l.next(&t.Loc)
		case *ast.ListTerm:
			l.next(&t.Loc)
		case *ast.TupleTerm:
			l.next(&t.Loc)
		case *ast.MapTerm:
			l.next(&t.Loc)
		case *ast.RecordTerm:
			l.next(&t.Loc)
		case *ast.VariantTerm:
			l.next(&t.Loc)
		case *ast.CondTerm:
			l.next(&t.Loc)
		case *ast.AppTerm:
			l.next(&t.Loc)
		case *ast.CoerceTerm:
			l.next(&t.Loc)
			l.typ(t.To)
		case *ast.LambdaTerm:
			s := t.Scope
			l.next(&s.Loc)
			for _, p := range s.Signature.Params {
				l.next(&p.Loc)
				l.typ(p.Declared)
			}
			l.typ(s.Signature.Declared)
			// Nested statements are visited by ast.Visit; their bindings are located here.
			for _, stmt := range s.Body {
				switch stmt := stmt.(type) {
				case *ast.LetStmt:
					l.next(&stmt.Binding.Loc)
					l.typ(stmt.Binding.Declared)
				case *ast.TypeDefStmt:
					l.next(&stmt.Def.Loc)
					l.typ(stmt.Def.Value)
				}
			}
		}
		return true
	})
}
