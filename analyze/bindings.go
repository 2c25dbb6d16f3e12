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
	"strconv"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/intrinsic"
	"github.com/wdamron/kestrel/types"
)

// CollectBindings registers the value and type bindings of every scope of m, links function
// literals to their parents, installs inline parameters, and commits parameter lists.
//
// A nominal type definition `type T = New(Rep)` produces a constructor let-binding `T: Rep -> T`
// and a destructor `_T: T -> Rep`, which take the place of the definition within the scope body.
// Type definition statements do not remain in any scope body afterward.
func CollectBindings(m *ast.Module, sink *diag.Sink, reg intrinsic.Registry) {
	c := &bindingCollector{sink: sink, reg: reg}
	w := ast.ScopeWalker{
		EnterScope: c.enterScope,
		LeaveScope: c.leaveScope,
		Stmt:       c.stmt,
		Term:       c.term,
	}
	w.Walk(m.Scope)
}

type bindingCollector struct {
	sink *diag.Sink
	reg  intrinsic.Registry
}

// inlineName names the inline parameter at index of the function literal at loc.
func inlineName(index int, loc diag.Loc) string {
	return "$" + strconv.Itoa(index) + loc.Suffix()
}

func (c *bindingCollector) enterScope(w *ast.ScopeWalker, s ast.Scope) {
	l, isLambda := s.(*ast.LambdaScope)
	if isLambda && w.Depth() > 1 {
		l.Parent = w.Frames[w.Depth()-2].Scope
	}
	for _, stmt := range s.Base().Body {
		if td, ok := stmt.(*ast.TypeDefStmt); ok {
			c.collectTypeDef(s, td.Def)
		}
	}
	if isLambda {
		for _, p := range l.Signature.Params {
			if prev, ok := l.Values[p.Name]; ok {
				c.sink.Report(p.Loc, diag.BindRedefined, "parameter {0} is already defined at {1}", p.Name, prev.Location())
				continue
			}
			p.Lambda = l
			l.Values[p.Name] = p
		}
	}
}

func (c *bindingCollector) leaveScope(w *ast.ScopeWalker, s ast.Scope) {
	if l, ok := s.(*ast.LambdaScope); ok && !l.Committed() {
		l.Commit(func(i int) string { return inlineName(i, l.Loc) })
	}
	base := s.Base()
	body := make([]ast.Stmt, 0, len(base.Body))
	for _, stmt := range base.Body {
		td, ok := stmt.(*ast.TypeDefStmt)
		if !ok {
			body = append(body, stmt)
			continue
		}
		for _, b := range []*ast.LetBinding{td.Def.Ctor, td.Def.Dtor} {
			if b != nil && b.Owner == s {
				body = append(body, b.Stmt)
			}
		}
	}
	base.SetBody(body)
}

func (c *bindingCollector) stmt(w *ast.ScopeWalker, stmt ast.Stmt) bool {
	switch stmt := stmt.(type) {
	case *ast.LetStmt:
		c.collectLet(w.Scope(), stmt.Binding)
	case *ast.TypeDefStmt, *ast.ImportStmt, *ast.ExportStmt:
		return false
	}
	return true
}

func (c *bindingCollector) collectLet(s ast.Scope, b *ast.LetBinding) {
	base := s.Base()
	if prev, ok := base.Values[b.Name]; ok {
		c.sink.Report(b.Loc, diag.BindRedefined, "{0} is already defined at {1}", b.Name, prev.Location())
		return
	}
	b.Owner = s
	base.Values[b.Name] = b
	if b.IsIntrinsic() && b.Declared == nil {
		in, ok := c.reg.Lookup(b.Intrinsic)
		if !ok {
			c.sink.Report(b.Loc, diag.BindUnresolved, "unknown intrinsic {0}", b.Intrinsic)
			return
		}
		b.Declared = in.Type
	}
	b.Declared = collectInlineParams(b.Declared)
}

// collectInlineParams quantifies the type parameters of a declared type which are not owned by a
// scheme: `let id: A -> A` declares `<A> A -> A`. Parameters are identified by name.
func collectInlineParams(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	var inline []*types.Param
	byName := make(map[string]*types.Param)
	dup := false
	for _, p := range types.Params(t) {
		if p.Owner() != nil {
			continue
		}
		if first, ok := byName[p.Name]; ok {
			dup = dup || first != p
			continue
		}
		byName[p.Name] = p
		inline = append(inline, p)
	}
	if len(inline) == 0 {
		return t
	}
	if dup {
		t = types.Transform(t, func(t types.Type) types.Type {
			if p, ok := t.(*types.Param); ok && p.Owner() == nil {
				return byName[p.Name]
			}
			return t
		})
	}
	if s, ok := t.(*types.Scheme); ok {
		params := append([]*types.Param(nil), s.Params...)
		for _, p := range s.Params {
			p.Release(s)
		}
		return types.NewScheme(append(params, inline...), s.Body)
	}
	return types.NewScheme(inline, t)
}

func (c *bindingCollector) collectTypeDef(s ast.Scope, d *ast.TypeDef) {
	base := s.Base()
	if prev, ok := base.Types[d.Name]; ok {
		at := diag.NoLoc
		if prev, ok := prev.(*ast.TypeDef); ok {
			at = prev.Loc
		}
		c.sink.Report(d.Loc, diag.BindTypeRedefined, "type {0} is already defined at {1}", d.Name, at)
		return
	}
	seen := make(map[string]struct{}, len(d.Params))
	for _, p := range d.Params {
		if _, dup := seen[p.Name]; dup {
			c.sink.Report(p.Loc, diag.BindTypeRedefined, "type parameter {0} of {1} is already defined", p.Name, d.Name)
			return
		}
		seen[p.Name] = struct{}{}
	}
	d.Owner = s
	base.Types[d.Name] = d
	base.TypeDefs = append(base.TypeDefs, d)

	if rep, ok := nominalRep(s, d.Value); ok {
		d.Nominal = true
		d.Const = types.NewNominal(d.Name, d.Params, rep, d.Loc)
		d.Ctor = c.nominalLet(s, d, d.Name, rep, false)
		d.Dtor = c.nominalLet(s, d, "_"+d.Name, rep, true)
		return
	}
	if len(d.Params) > 0 {
		d.Const = types.NewAbstraction(d.Name, d.Params, d.Value)
	}
}

// nominalRep returns the representation of `New(Rep)`, unless `New` is shadowed by a type
// binding of an enclosing scope.
func nominalRep(s ast.Scope, t types.Type) (types.Type, bool) {
	app, ok := t.(*types.App)
	if !ok {
		return nil, false
	}
	switch base := app.Base.(type) {
	case *types.Const:
		return app.Arg, base == types.NewC
	case *types.Ref:
		if base.Name != "New" || base.Qualifier != "" {
			return nil, false
		}
		for ; s != nil; s = s.ParentScope() {
			if _, shadowed := s.Base().Types["New"]; shadowed {
				return nil, false
			}
		}
		return app.Arg, true
	}
	return nil, false
}

// nominalLet synthesizes the constructor (or destructor) of a nominal type as a function literal
// coercing its single parameter. Type parameters of the definition are copied for the declared
// scheme; the scheme body and the coercion refer to them by name.
func (c *bindingCollector) nominalLet(s ast.Scope, d *ast.TypeDef, name string, rep types.Type, dtor bool) *ast.LetBinding {
	params := make([]*types.Param, len(d.Params))
	args := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.Copy()
		args[i] = &types.Ref{Name: p.Name, Loc: d.Loc}
	}
	var nominal types.Type = d.Const
	switch len(args) {
	case 0:
	case 1:
		nominal = &types.App{Base: d.Const, Arg: args[0]}
	default:
		nominal = &types.App{Base: d.Const, Arg: types.NewTuple(args...)}
	}
	from, to := copyRefs(rep), nominal
	if dtor {
		from, to = nominal, copyRefs(rep)
	}
	var declared types.Type = types.NewFn([]types.Type{from}, to)
	if len(params) > 0 {
		declared = types.NewScheme(params, declared)
	}

	x := &ast.ParamBinding{Name: "x", Loc: d.Loc}
	body := &ast.CoerceTerm{Term: &ast.Ref{Name: "x", Loc: d.Loc}, To: copyRefs(to), Loc: d.Loc}
	l := ast.NewLambdaScope(d.Loc, []*ast.ParamBinding{x}, []ast.Stmt{&ast.ExprStmt{Term: body}})
	l.Parent = s
	x.Lambda = l
	l.Values[x.Name] = x
	l.Commit(func(i int) string { return inlineName(i, l.Loc) })

	stmt := ast.NewLet(name, d.Loc, declared, &ast.LambdaTerm{Scope: l})
	c.collectLet(s, stmt.Binding)
	return stmt.Binding
}

// copyRefs copies the unresolved references of t so they may be resolved independently.
func copyRefs(t types.Type) types.Type {
	return types.Transform(t, func(t types.Type) types.Type {
		if ref, ok := t.(*types.Ref); ok && ref.Target == nil {
			c := *ref
			return &c
		}
		return t
	})
}

func (c *bindingCollector) term(w *ast.ScopeWalker, t ast.Term) (ast.Term, bool) {
	if ref, ok := t.(*ast.Ref); ok {
		if p, ok := ref.Binding.(*ast.ParamBinding); ok && p.Inline && p.Lambda == nil {
			c.installInline(w, ref, p)
		}
	}
	return t, true
}

// installInline binds an inline parameter reference `$i`, `$$i`, ... to the function literal its
// depth selects, installing the parameter in that literal on first use.
func (c *bindingCollector) installInline(w *ast.ScopeWalker, ref *ast.Ref, p *ast.ParamBinding) {
	depth := 0
	for depth < len(ref.Name) && ref.Name[depth] == '$' {
		depth++
	}
	index, err := strconv.Atoi(ref.Name[depth:])
	diag.Invariant(depth > 0 && err == nil && index >= 0, "malformed inline parameter", ref.Name, ref.Loc)

	l := ast.EnclosingLambda(w.Scope())
	for n := 1; l != nil && n < depth; n++ {
		l = ast.EnclosingLambda(l.Parent)
	}
	if l == nil {
		c.sink.Report(ref.Loc, diag.BindInlineNoLambda, "inline parameter {0} has no enclosing function literal at depth {1}", ref.Name, depth)
		return
	}
	if l.Explicit {
		c.sink.Report(ref.Loc, diag.BindInlineExplicit, "inline parameter {0} is not allowed in the function literal at {1}, which declares its parameters", ref.Name, l.Loc)
		return
	}
	name := inlineName(index, l.Loc)
	if prev, ok := l.InlineParam(name); ok {
		ref.Binding = prev
		return
	}
	p.Name, p.Index = name, index
	if !p.Loc.IsValid() {
		p.Loc = ref.Loc
	}
	l.InstallInline(p)
}
