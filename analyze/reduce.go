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
	"github.com/wdamron/kestrel/intrinsic"
	"github.com/wdamron/kestrel/internal/astutil"
)

// Reduce folds constant expressions of a type-checked module: references to let-bindings whose
// initializers reduced to numeric or boolean literals are replaced by the literals, and calls of
// intrinsics with literal arguments are replaced by their results. Statements are reduced in
// dependency order, so each binding is reduced before the bindings which reference it.
//
// Reduce is idempotent: reducing a reduced module changes nothing.
func Reduce(m *ast.Module, reg intrinsic.Registry) {
	r := reducer{reg: reg}
	r.reduceScope(m.Scope)
}

type reducer struct {
	reg intrinsic.Registry
}

func (r *reducer) reduceScope(s ast.Scope) {
	base := s.Base()
	groups := base.Groups
	if groups == nil {
		groups = astutil.Groups(base)
	}
	for _, group := range groups {
		for _, stmt := range astutil.LetsFirst(group) {
			switch stmt := stmt.(type) {
			case *ast.LetStmt:
				if stmt.Binding.Init != nil {
					stmt.Binding.Init = ast.Transform(stmt.Binding.Init, r.reduce)
				}
			case *ast.ExprStmt:
				stmt.Term = ast.Transform(stmt.Term, r.reduce)
			}
		}
	}
}

func (r *reducer) reduce(t ast.Term) ast.Term {
	switch t := t.(type) {
	case *ast.Ref:
		if let, ok := t.Binding.(*ast.LetBinding); ok && !let.IsIntrinsic() {
			if lit := inlinable(let.Init); lit != nil {
				return relocate(lit, t)
			}
		}
	case *ast.AppTerm:
		if lit := r.fold(t); lit != nil {
			return relocate(lit, t)
		}
	case *ast.LambdaTerm:
		r.reduceScope(t.Scope)
	}
	return t
}

// inlinable returns the numeric or boolean literal t, or nil.
func inlinable(t ast.Term) ast.Literal {
	switch t := t.(type) {
	case *ast.IntLit, *ast.LongLit, *ast.DoubleLit, *ast.BoolLit:
		return t.(ast.Literal)
	}
	return nil
}

// fold computes a call of an intrinsic with literal arguments.
func (r *reducer) fold(app *ast.AppTerm) ast.Literal {
	if app.Flavor != ast.Call {
		return nil
	}
	ref, ok := app.Base.(*ast.Ref)
	if !ok {
		return nil
	}
	let, ok := ref.Binding.(*ast.LetBinding)
	if !ok || !let.IsIntrinsic() {
		return nil
	}
	in, ok := r.reg.Lookup(let.Intrinsic)
	if !ok || in.Reduce == nil {
		return nil
	}
	args := make([]ast.Literal, len(app.Args))
	for i, arg := range app.Args {
		lit, ok := arg.(ast.Literal)
		if !ok {
			return nil
		}
		args[i] = lit
	}
	out, ok := in.Reduce(args)
	if !ok {
		return nil
	}
	return out
}

// relocate returns a copy of a literal placed at the location of the term it replaces.
func relocate(lit ast.Literal, at ast.Term) ast.Term {
	loc := at.Location()
	switch lit := lit.(type) {
	case *ast.BoolLit:
		return &ast.BoolLit{Value: lit.Value, Loc: loc}
	case *ast.IntLit:
		return &ast.IntLit{Value: lit.Value, Loc: loc}
	case *ast.LongLit:
		return &ast.LongLit{Value: lit.Value, Loc: loc}
	case *ast.DoubleLit:
		return &ast.DoubleLit{Value: lit.Value, Loc: loc}
	case *ast.StringLit:
		return &ast.StringLit{Value: lit.Value, Loc: loc}
	case *ast.SymbolLit:
		return &ast.SymbolLit{Value: lit.Value, Loc: loc}
	}
	return lit
}
