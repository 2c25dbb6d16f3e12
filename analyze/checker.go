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
	"github.com/wdamron/kestrel/internal/astutil"
	"github.com/wdamron/kestrel/internal/typeutil"
	"github.com/wdamron/kestrel/types"
)

// CheckTypes infers the types of every binding and term of m.
//
// The statements of each scope are partitioned into dependency groups and checked in dependency
// order. Bindings of a group are generalized together once the group is checked, unless their
// types mention type-variables of an enclosing group which is still being checked; those bindings
// are generalized with the enclosing group instead. Every group is finished, even after errors,
// so later groups see a type for each binding.
//
// After each top-level group is checked, every term of the group carries its final type:
// type-variables generalized by some group become the corresponding type parameters, and
// type-variables left unconstrained default to the unit type (or to the empty row). Variable ids
// and the substitution then start over for the next top-level group.
func CheckTypes(m *ast.Module, sink *diag.Sink) {
	c := newChecker(sink)
	c.checkScope(m.Scope)
}

type checker struct {
	sink *diag.Sink
	ctx  *typeutil.Context
	// bound maps declared type parameters to the type-variables they were instantiated with.
	bound   map[*types.Param]types.Type
	group   *group
	pending map[*ast.LetBinding]*pendingItem
	// quantified maps generalized type-variables to their type parameters.
	quantified map[int]types.Type
	terms      []ast.Typed
	lets       []*ast.LetBinding
}

// group is a dependency group being checked.
type group struct {
	parent *group
	items  []*pendingItem
	// ambient holds the function types of literals within the group; their parameters are free
	// within nested groups.
	ambient []types.Type
	// deferred holds items of nested groups which could not be generalized without this group.
	deferred []*pendingItem
}

type pendingItem struct {
	let  *ast.LetBinding
	seed types.Type
	// declared holds the type-variables instantiated for the parameters of a declared scheme.
	declared []*types.Var
}

func newChecker(sink *diag.Sink) *checker {
	return &checker{
		sink:       sink,
		ctx:        typeutil.NewContext(),
		bound:      make(map[*types.Param]types.Type),
		pending:    make(map[*ast.LetBinding]*pendingItem),
		quantified: make(map[int]types.Type),
	}
}

func (c *checker) fresh() *types.Var { return c.ctx.Fresh(types.Star, nil) }

func (c *checker) checkScope(s ast.Scope) {
	base := s.Base()
	c.checkTypeDefs(base)
	for _, stmts := range astutil.Groups(base) {
		c.checkGroup(astutil.LetsFirst(stmts))
	}
}

func (c *checker) checkTypeDefs(base *ast.ScopeBase) {
	for _, d := range base.TypeDefs {
		if d.Const == nil && aliasCycle(d) {
			c.sink.Report(d.Loc, diag.TypeRecursive, "type {0} is defined in terms of itself", d.Name)
			d.Value = types.Unit
			continue
		}
		if err := types.CheckKinds(d.Value); err != nil {
			c.sink.Report(d.Loc, diag.TypeKindMismatch, "invalid definition of type {0}: {1}", d.Name, err)
			switch {
			case d.Const == nil:
				d.Value = types.Unit
			case d.Nominal:
				d.Const.Rep = types.Unit
			default:
				d.Const.Body = types.Unit
			}
		}
	}
}

// aliasCycle reports whether an alias reaches itself through aliases alone.
func aliasCycle(d *ast.TypeDef) bool {
	seen := make(map[*ast.TypeDef]struct{})
	t := d.Value
	for {
		ref, ok := t.(*types.Ref)
		if !ok {
			return false
		}
		next, ok := ref.Target.(*ast.TypeDef)
		if !ok || next.Const != nil {
			return false
		}
		if next == d {
			return true
		}
		if _, ok := seen[next]; ok {
			return false
		}
		seen[next] = struct{}{}
		t = next.Value
	}
}

func (c *checker) checkGroup(stmts []ast.Stmt) {
	g := &group{parent: c.group}
	c.group = g
	for _, stmt := range stmts {
		if let, ok := stmt.(*ast.LetStmt); ok {
			g.items = append(g.items, c.seed(let.Binding))
		}
	}
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *ast.LetStmt:
			b := stmt.Binding
			if b.Init == nil {
				continue
			}
			c.checkAgainst(b.Init, c.pending[b].seed)
		case *ast.ExprStmt:
			c.infer(stmt.Term)
		}
	}
	c.finish(g)
	c.group = g.parent
	if c.group == nil {
		c.flush()
	}
}

// seed assigns the type a binding has while its group is checked: its instantiated declared type,
// the type of a literal initializer, or a fresh type-variable.
func (c *checker) seed(let *ast.LetBinding) *pendingItem {
	it := &pendingItem{let: let}
	c.pending[let] = it
	if let.Declared != nil {
		if err := types.CheckKinds(types.Strip(let.Declared)); err != nil {
			c.sink.Report(let.Loc, diag.TypeKindMismatch, "invalid declared type for {0}: {1}", let.Name, err)
			it.seed = c.fresh()
			return it
		}
		if types.IsHigherRank(let.Declared) {
			c.sink.Report(let.Loc, diag.TypeHigherRank, "declared type {0} of {1} has nested type parameters", types.TypeString(let.Declared), let.Name)
			it.seed = c.fresh()
			return it
		}
		it.seed = c.ctx.Instantiate(let.Declared, c.bound)
		if s, ok := let.Declared.(*types.Scheme); ok {
			for _, p := range s.Params {
				if tv, ok := c.bound[p].(*types.Var); ok {
					it.declared = append(it.declared, tv)
				}
			}
		}
		return it
	}
	if lit, ok := let.Init.(ast.Literal); ok {
		it.seed = lit.Type()
		return it
	}
	it.seed = c.fresh()
	return it
}

// outerTypes returns the types of enclosing groups which are still being checked.
func (g *group) outerTypes() []types.Type {
	var ts []types.Type
	for p := g.parent; p != nil; p = p.parent {
		for _, it := range p.items {
			ts = append(ts, it.seed)
		}
		for _, it := range p.deferred {
			ts = append(ts, it.seed)
		}
		ts = append(ts, p.ambient...)
	}
	return ts
}

// finish generalizes the bindings of a group, deferring bindings which mention ambient type-variables.
func (c *checker) finish(g *group) {
	ambient := c.ctx.AmbientVars(g.outerTypes())
	q := types.NewQuantifier(ambient, nil)
	for _, it := range g.items {
		delete(c.pending, it.let)
	}
	items := append(append([]*pendingItem(nil), g.items...), g.deferred...)
	for _, it := range items {
		t := c.ctx.Apply(it.seed)
		if len(it.declared) > 0 && !c.ctx.IsGeneral(it.declared) {
			f := c.formatter()
			c.sink.Report(it.let.Loc, diag.TypeDeclared, "declared type {0} of {1} is more general than its inferred type {2}",
				types.TypeString(it.let.Declared), it.let.Name, f.Format(t))
			it.declared = nil
		}
		if g.parent != nil && mentionsAny(q, t) {
			it.let.Type = t
			g.parent.deferred = append(g.parent.deferred, it)
			continue
		}
		it.let.Type = c.ctx.Generalize(q, t)
		c.lets = append(c.lets, it.let)
	}
	for id, p := range q.Bound {
		c.quantified[id] = p
	}
}

func mentionsAny(q *types.Quantifier, t types.Type) bool {
	for _, tv := range types.FreeVars(t) {
		if q.IsAmbient(tv) {
			return true
		}
	}
	return false
}

// flush assigns final types to the terms and bindings of a finished top-level group and resets
// the inference state.
func (c *checker) flush() {
	for _, t := range c.terms {
		if ty := t.Type(); ty != nil {
			t.SetType(c.finalize(ty))
		}
	}
	for _, let := range c.lets {
		diag.Invariant(!types.HasFreeVars(let.Type), "type-variables escaped generalization", let.Name, types.TypeString(let.Type))
	}
	c.ctx.Reset()
	c.bound = make(map[*types.Param]types.Type)
	c.quantified = make(map[int]types.Type)
	c.terms, c.lets = nil, nil
}

func (c *checker) finalize(t types.Type) types.Type {
	t = types.SubstVars(c.ctx.Apply(t), c.quantified)
	return types.Transform(t, func(t types.Type) types.Type {
		tv, ok := t.(*types.Var)
		if !ok {
			return t
		}
		if types.KindsEqual(tv.Kind(), types.StarKeyed) {
			return &types.Map{}
		}
		return types.Unit
	})
}

// formatter names type-variables of enclosing groups consistently within error messages.
func (c *checker) formatter() *types.Formatter {
	if c.group == nil {
		return types.NewFormatter(nil)
	}
	ts := c.group.outerTypes()
	for _, it := range c.group.items {
		ts = append(ts, it.seed)
	}
	return types.NewFormatter(c.ctx.AmbientVars(ts))
}

// unify reports a failure to unify the expected type with the actual type at loc.
func (c *checker) unify(loc diag.Loc, expected, actual types.Type) bool {
	err := c.ctx.TryUnify(expected, actual)
	if err == nil {
		return true
	}
	code := diag.TypeMismatch
	if ue, ok := err.(*typeutil.UnifyError); ok {
		code = ue.Code
	}
	f := c.formatter()
	e, a := f.Format(c.ctx.Apply(expected)), f.Format(c.ctx.Apply(actual))
	switch code {
	case diag.TypeRecursive:
		c.sink.Report(loc, code, "recursive type: cannot unify {0} with {1}", e, a)
	case diag.TypeKindMismatch:
		c.sink.Report(loc, code, "kind mismatch: cannot unify {0} with {1}", e, a)
	case diag.TypeArity:
		c.sink.Report(loc, code, "arity mismatch: expected {0}, found {1}", e, a)
	case diag.TypeNoField:
		c.sink.Report(loc, code, "missing fields: expected {0}, found {1}", e, a)
	default:
		c.sink.Report(loc, code, "type mismatch: expected {0}, found {1}", e, a)
	}
	return false
}
