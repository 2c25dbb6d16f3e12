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
	"github.com/wdamron/kestrel/types"
)

// ResolveRefs binds every value and type reference of m, records the captures of function
// literals and the dependency edges between statements, and rejects forward references.
//
// Values resolve to the innermost scope binding the name, then to the module namespace. Within
// one scope a reference must follow the definition it names. A function literal may capture a
// binding of an enclosing function literal only when the binding is defined before the statement
// holding the literal; module bindings may be captured from anywhere.
func ResolveRefs(m *ast.Module, sink *diag.Sink) {
	r := &refResolver{sink: sink, module: m}
	r.w = ast.ScopeWalker{
		EnterScope: r.enterScope,
		LeaveScope: r.leaveScope,
		Stmt:       r.stmt,
		Term:       r.term,
	}
	r.w.Walk(m.Scope)
}

type refResolver struct {
	sink   *diag.Sink
	module *ast.Module
	w      ast.ScopeWalker
	// params holds, for each frame, the type parameters of the declared type of the statement
	// being walked.
	params [][]*types.Param
}

func (r *refResolver) enterScope(w *ast.ScopeWalker, s ast.Scope) {
	r.params = append(r.params, nil)
	for _, d := range s.Base().TypeDefs {
		d.Value = r.resolveType(d.Value, d.Params)
		if d.Const == nil {
			continue
		}
		if d.Nominal {
			d.Const.Rep = d.Value.(*types.App).Arg
		} else {
			d.Const.Body = d.Value
		}
	}
	if l, ok := s.(*ast.LambdaScope); ok {
		sig := &l.Signature
		for _, p := range sig.Params {
			if p.Declared != nil {
				p.Declared = r.resolveType(p.Declared, nil)
			}
		}
		sig.DeclaredParams = r.resolveType(sig.DeclaredParams, nil)
		if sig.Declared != nil {
			sig.Declared = r.resolveType(sig.Declared, nil)
		}
	}
}

func (r *refResolver) leaveScope(w *ast.ScopeWalker, s ast.Scope) {
	r.params = r.params[:len(r.params)-1]
}

func (r *refResolver) stmt(w *ast.ScopeWalker, stmt ast.Stmt) bool {
	depth := w.Depth() - 1
	r.params[depth] = nil
	switch stmt := stmt.(type) {
	case *ast.LetStmt:
		b := stmt.Binding
		if b.Declared != nil && !b.IsIntrinsic() {
			b.Declared = r.resolveType(b.Declared, nil)
			if s, ok := b.Declared.(*types.Scheme); ok {
				r.params[depth] = s.Params
			}
		}
	case *ast.ImportStmt, *ast.ExportStmt, *ast.TypeDefStmt:
		return false
	}
	return true
}

func (r *refResolver) term(w *ast.ScopeWalker, t ast.Term) (ast.Term, bool) {
	switch t := t.(type) {
	case *ast.Ref:
		r.resolveRef(t)
	case *ast.AppTerm:
		if t.Flavor == ast.Address {
			if q := r.qualifiedAddress(t); q != nil {
				r.resolveRef(q)
				return q, false
			}
		}
	case *ast.CoerceTerm:
		if t.To != nil {
			t.To = r.resolveType(t.To, nil)
		}
	}
	return t, true
}

// lookup returns the innermost binding of name and the index of the frame binding it, or -1 for
// a namespace binding.
func (r *refResolver) lookup(name string) (ast.ValueBinding, int) {
	for i := r.w.Depth() - 1; i >= 0; i-- {
		if b, ok := r.w.Frames[i].Scope.Base().Values[name]; ok {
			return b, i
		}
	}
	if b, ok := r.module.Namespace[name]; ok {
		return b, -1
	}
	return nil, -1
}

func (r *refResolver) resolveRef(ref *ast.Ref) {
	if ref.Binding != nil {
		// inline parameters are bound during binding collection
		r.capture(ref.Binding)
		return
	}
	if ref.IsQualified() {
		ref.Binding = r.lookupQualified(ref.Qualifier, ref.Name, ref.Loc)
		return
	}
	b, k := r.lookup(ref.Name)
	if b == nil {
		r.sink.Report(ref.Loc, diag.BindUnresolved, "{0} is not defined", ref.Name)
		return
	}
	ref.Binding = b
	if k < 0 {
		return
	}
	if let, ok := b.(*ast.LetBinding); ok {
		r.checkForward(ref, let, k)
		frame := &r.w.Frames[k]
		frame.Scope.Base().AddDep(frame.Stmt, let)
	}
	r.capture(b)
}

func (r *refResolver) lookupQualified(qualifier, name string, loc diag.Loc) ast.ValueBinding {
	m, ok := r.module.Qualified[qualifier]
	if !ok {
		r.sink.Report(loc, diag.BindUnknownModule, "module {0} is not imported", qualifier)
		return nil
	}
	b, ok := m.Exports[name]
	if !ok {
		r.sink.Report(loc, diag.BindQualifiedLookup, "{0} is not exported by module {1}", name, m.Name)
		return nil
	}
	return b
}

// checkForward rejects references to let-bindings of frame k which are not yet defined when the
// current statement of that frame executes.
func (r *refResolver) checkForward(ref *ast.Ref, let *ast.LetBinding, k int) {
	frame := &r.w.Frames[k]
	base := frame.Scope.Base()
	def, cur := base.IndexOf(let.Stmt), base.IndexOf(frame.Stmt)
	if def < 0 || cur < 0 {
		return
	}
	innermost := k == r.w.Depth()-1
	switch {
	case innermost && cur == def:
		r.sink.Report(ref.Loc, diag.BindSelfReference, "{0} is referenced within its own definition", ref.Name)
	case innermost && cur < def:
		r.sink.Report(ref.Loc, diag.BindForwardRef, "{0} is referenced before its definition at {1}", ref.Name, let.Loc)
	case cur < def:
		if _, ok := frame.Scope.(*ast.LambdaScope); ok {
			r.sink.Report(ref.Loc, diag.BindForwardCapture, "{0} is captured before its definition at {1}", ref.Name, let.Loc)
		}
	}
}

// capture records b in the captures of each function literal between the reference and the
// scope binding b.
func (r *refResolver) capture(b ast.ValueBinding) {
	var owner ast.Scope
	switch b := b.(type) {
	case *ast.LetBinding:
		owner = b.Owner
	case *ast.ParamBinding:
		owner = b.Lambda
	}
	if owner == nil {
		return
	}
	k := r.w.IndexOf(owner)
	if k < 0 {
		return
	}
	_, fromLambda := owner.(*ast.LambdaScope)
	for j := r.w.Depth() - 1; j > k; j-- {
		l := r.w.Frames[j].Scope.(*ast.LambdaScope)
		if fromLambda {
			l.LambdaCaptures.Insert(b)
		} else {
			l.ModuleCaptures.Insert(b)
		}
	}
}

// qualifiedAddress reinterprets an address chain `a.b.x` as a qualified reference when its root
// is not a value binding and its prefix names an imported module.
func (r *refResolver) qualifiedAddress(app *ast.AppTerm) *ast.Ref {
	if len(app.Args) != 1 {
		return nil
	}
	sym, ok := app.Args[0].(*ast.SymbolLit)
	if !ok {
		return nil
	}
	root, qualifier, ok := addressChain(app.Base)
	if !ok {
		return nil
	}
	if b, _ := r.lookup(root); b != nil {
		return nil
	}
	if _, ok := r.module.Qualified[qualifier]; !ok {
		return nil
	}
	return &ast.Ref{Name: sym.Value, Qualifier: qualifier, Loc: app.Loc}
}

func addressChain(t ast.Term) (root, chain string, ok bool) {
	switch t := t.(type) {
	case *ast.Ref:
		if t.IsQualified() || t.Binding != nil {
			return "", "", false
		}
		return t.Name, t.Name, true
	case *ast.AppTerm:
		if t.Flavor != ast.Address || len(t.Args) != 1 {
			return "", "", false
		}
		sym, isSym := t.Args[0].(*ast.SymbolLit)
		if !isSym {
			return "", "", false
		}
		root, chain, ok = addressChain(t.Base)
		return root, chain + "." + sym.Value, ok
	}
	return "", "", false
}

// resolveType resolves the type references of t. References to type parameters are replaced by
// the parameters; other references are bound in place. Parameters of schemes within t, local,
// and the declared types of enclosing statements are visible, followed by type definitions of
// enclosing scopes, imported types, and builtin constructors.
func (r *refResolver) resolveType(t types.Type, local []*types.Param) types.Type {
	if t == nil {
		return nil
	}
	types.Walk(t, func(t types.Type) bool {
		if s, ok := t.(*types.Scheme); ok {
			local = append(local, s.Params...)
		}
		return true
	})
	return types.Transform(t, func(t types.Type) types.Type {
		ref, ok := t.(*types.Ref)
		if !ok || ref.Target != nil {
			return t
		}
		b := r.lookupType(ref, local)
		if b == nil {
			return t
		}
		if p, ok := b.(*types.Param); ok {
			return p
		}
		ref.Target = b
		return t
	})
}

func (r *refResolver) lookupType(ref *types.Ref, local []*types.Param) types.Binding {
	if ref.Qualifier != "" {
		m, ok := r.module.Qualified[ref.Qualifier]
		if !ok {
			r.sink.Report(ref.Loc, diag.BindUnknownModule, "module {0} is not imported", ref.Qualifier)
			return nil
		}
		b, ok := m.ExportTypes[ref.Name]
		if !ok {
			r.sink.Report(ref.Loc, diag.BindQualifiedLookup, "type {0} is not exported by module {1}", ref.Name, m.Name)
			return nil
		}
		return b
	}
	for i := len(local) - 1; i >= 0; i-- {
		if local[i].Name == ref.Name {
			return local[i]
		}
	}
	for i := len(r.params) - 1; i >= 0; i-- {
		for _, p := range r.params[i] {
			if p.Name == ref.Name {
				return p
			}
		}
	}
	for i := r.w.Depth() - 1; i >= 0; i-- {
		frame := &r.w.Frames[i]
		b, ok := frame.Scope.Base().Types[ref.Name]
		if !ok {
			continue
		}
		if d, ok := b.(*ast.TypeDef); ok && frame.Stmt != nil {
			frame.Scope.Base().AddDep(frame.Stmt, d)
		}
		return b
	}
	if b, ok := r.module.TypeNamespace[ref.Name]; ok {
		return b
	}
	if b, ok := types.Builtins[ref.Name]; ok {
		return b
	}
	r.sink.Report(ref.Loc, diag.BindTypeUnresolved, "type {0} is not defined", ref.Name)
	return nil
}
